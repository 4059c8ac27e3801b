package services

import (
	"log/slog"
	"messenger/domain"
	"messenger/domain/mimetypes"
	"messenger/observability"
	"messenger/repositories"

	"github.com/google/uuid"
)

type IMediaService interface {
	Upload(content []byte, url, thumbnailURL string) (domain.MediaFile, error)
	Attach(mediaID uuid.UUID) (domain.Attachment, error)
	GetMediaFile(id uuid.UUID) (*domain.MediaFile, error)
}

// MediaService records metadata of content already stored elsewhere (url).
// The bytes are only sniffed for their MIME type and size, never kept.
type MediaService struct {
	log     *slog.Logger
	factory domain.Factory
	media   repositories.IMediaRepository
}

func NewMediaService(log *slog.Logger, factory domain.Factory, media repositories.IMediaRepository) *MediaService {
	return &MediaService{log: log, factory: factory, media: media}
}

func (s *MediaService) Upload(content []byte, url, thumbnailURL string) (domain.MediaFile, error) {
	detection := mimetypes.Detect(content)
	file := s.factory.NewMediaFile(url, thumbnailURL, string(detection.Type), int64(len(content)))
	if err := s.media.SaveMediaFile(file); err != nil {
		return domain.MediaFile{}, err
	}
	observability.MediaUploaded.Observe(float64(file.SizeBytes))
	s.log.Debug("Media uploaded", "media_id", file.ID, "mime", file.MimeType)
	return file, nil
}

// Attach creates an Attachment typed by the extension of the media's MIME type.
func (s *MediaService) Attach(mediaID uuid.UUID) (domain.Attachment, error) {
	file, err := s.media.GetMediaFile(mediaID)
	if err != nil {
		return domain.Attachment{}, err
	}
	attachment := s.factory.NewAttachment(mimetypes.ExtensionFor(mimetypes.MIME(file.MimeType)))
	if err = s.media.SaveAttachment(attachment); err != nil {
		return domain.Attachment{}, err
	}
	return attachment, nil
}

func (s *MediaService) GetMediaFile(id uuid.UUID) (*domain.MediaFile, error) {
	return s.media.GetMediaFile(id)
}
