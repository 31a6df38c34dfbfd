// Package session models one recorded play of a campaign.
package session

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/meeplelog/meeplelog/internal/errors"
	"github.com/meeplelog/meeplelog/internal/platform/id"
)

// ErrEmptyCampaignID indicates a missing campaign ID.
var ErrEmptyCampaignID = apperrors.New(apperrors.CodeSessionEmptyCampaignID, "campaign id is required")

// Session represents one play session within a campaign. PlayedAt is the
// (player-supplied) date the game was played; CreatedAt is when the record
// entered the system and tie-breaks sessions sharing a play date.
type Session struct {
	ID         string
	CampaignID string
	PlayedAt   time.Time
	CreatedAt  time.Time
}

// CreateInput describes the metadata needed to record a session.
type CreateInput struct {
	CampaignID string
	PlayedAt   time.Time
}

// Create records a new session with a generated ID. A zero PlayedAt defaults
// to the creation time.
func Create(input CreateInput, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	campaignID := strings.TrimSpace(input.CampaignID)
	if campaignID == "" {
		return Session{}, ErrEmptyCampaignID
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := now().UTC()
	playedAt := input.PlayedAt.UTC()
	if input.PlayedAt.IsZero() {
		playedAt = createdAt
	}

	return Session{
		ID:         sessionID,
		CampaignID: campaignID,
		PlayedAt:   playedAt,
		CreatedAt:  createdAt,
	}, nil
}
