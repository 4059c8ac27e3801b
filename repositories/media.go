//go:generate go run go.uber.org/mock/mockgen -source=media.go -destination=../mocks/mock_media_repository.go -package=mocks
package repositories

import (
	"log/slog"
	"messenger/domain"
	"messenger/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IMediaRepository interface {
	SaveMediaFile(file domain.MediaFile) error
	GetMediaFile(id uuid.UUID) (*domain.MediaFile, error)
	SaveAttachment(attachment domain.Attachment) error
	GetAttachment(id uuid.UUID) (*domain.Attachment, error)
}

type MediaRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMediaRepository(db *badger.DB, log *slog.Logger) *MediaRepository {
	return &MediaRepository{db: db, log: log}
}

func (r *MediaRepository) SaveMediaFile(file domain.MediaFile) error {
	return r.db.Update(func(txn *badger.Txn) error {
		r.log.Debug("Storing media file", "media_id", file.ID, "mime", file.MimeType, "size", file.SizeBytes)
		return setJSON(txn, mediaPrefix+file.ID.String(), file)
	})
}

func (r *MediaRepository) GetMediaFile(id uuid.UUID) (*domain.MediaFile, error) {
	var file domain.MediaFile
	err := r.db.View(func(txn *badger.Txn) (err error) {
		file, err = getJSON[domain.MediaFile](txn, mediaPrefix+id.String(), errors.ErrMediaNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *MediaRepository) SaveAttachment(attachment domain.Attachment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, attachmentPrefix+attachment.ID.String(), attachment)
	})
}

func (r *MediaRepository) GetAttachment(id uuid.UUID) (*domain.Attachment, error) {
	var attachment domain.Attachment
	err := r.db.View(func(txn *badger.Txn) (err error) {
		attachment, err = getJSON[domain.Attachment](txn, attachmentPrefix+id.String(), errors.ErrMediaNotFound)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}
