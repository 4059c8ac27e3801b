package projection

import (
	"messenger/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestTimeline_OrdersByActivity(t *testing.T) {
	req := require.New(t)
	me, bob := uuid.New(), uuid.New()

	// Given a silent group created last, and a private chat with an older message
	silent := domain.NewGroupChat(uuid.New(), t0.Add(2*time.Hour), "Team", "", "")
	silent.AddMember(me)

	private := domain.NewPrivateChat(uuid.New(), t0, bob, me)
	private.SendMessage(domain.NewTextMessage(uuid.New(), t0.Add(time.Hour), "hi"))

	busy := domain.NewGroupChat(uuid.New(), t0, "Ops", "", "")
	busy.AddMember(me)
	busy.AddMember(bob)
	busy.SendMessage(domain.NewTextMessage(uuid.New(), t0.Add(3*time.Hour), "deploy"))

	timeline := NewTimeline(me, []domain.Chat{private, silent, busy})

	req.Len(timeline.Entries, 3)
	req.Equal(busy.ID, timeline.Entries[0].ChatID)
	req.Equal(silent.ID, timeline.Entries[1].ChatID)
	req.Equal(private.ID, timeline.Entries[2].ChatID)

	req.Equal("Ops", timeline.Entries[0].Title)
	req.Equal(2, timeline.Entries[0].Participants)
	req.Equal(bob.String(), timeline.Entries[2].Title)
	req.Nil(timeline.Entries[1].LastMessage)
}

func TestTimeline_SkipsDeletedLastMessage(t *testing.T) {
	req := require.New(t)
	me := uuid.New()

	chat := domain.NewPrivateChat(uuid.New(), t0, me, me)
	kept := domain.NewImageMessage(uuid.New(), t0, uuid.New(), "sunset")
	gone := domain.NewTextMessage(uuid.New(), t0.Add(time.Minute), "oops")
	chat.SendMessage(kept)
	chat.SendMessage(gone)
	gone.Delete()

	entry := NewTimeline(me, []domain.Chat{chat}).Entries[0]

	req.Equal(2, entry.MessageCount)
	req.Equal(1, entry.Participants)
	req.Equal(me.String(), entry.Title)
	req.Equal(kept.ID, entry.LastMessage.Header().ID)
	req.Equal("[image] sunset", Preview(entry.LastMessage))
	req.Equal(t0.Add(time.Minute), entry.ActiveAt)
}
