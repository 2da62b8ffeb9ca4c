package services

import (
	"log"

	"host-engagement-system/apperrors"
	"host-engagement-system/models"
)

// ChallengeStore is the slice of the persistence collaborator the challenge
// engine needs.
type ChallengeStore interface {
	ListProgress(userID string) ([]models.ChallengeProgress, error)
	ListSubmissionsForUser(userID string) ([]models.VerificationSubmission, error)
	IncrementProgress(userID string, challengeType models.ChallengeType, amount, max int, metadata map[string]string) (*models.ChallengeProgress, error)
}

type ChallengeService struct {
	Store ChallengeStore
}

func NewChallengeService(store ChallengeStore) *ChallengeService {
	return &ChallengeService{Store: store}
}

// ListDefinitions returns the fixed catalog. No side effects.
func (s *ChallengeService) ListDefinitions() []models.ChallengeDefinition {
	return models.ChallengeCatalog
}

// GetUserChallenges joins stored progress with the catalog. Definitions with
// no stored row get a zero-progress default — a read never writes. Status is
// derived by folding that challenge's submissions, so it always reflects the
// authoritative review outcomes.
func (s *ChallengeService) GetUserChallenges(userID string) ([]models.Challenge, error) {
	progress, err := s.Store.ListProgress(userID)
	if err != nil {
		return nil, err
	}
	byType := make(map[models.ChallengeType]*models.ChallengeProgress, len(progress))
	for i := range progress {
		byType[progress[i].ChallengeType] = &progress[i]
	}

	subs, err := s.Store.ListSubmissionsForUser(userID)
	if err != nil {
		return nil, err
	}
	subsByType := make(map[models.ChallengeType][]models.VerificationSubmission)
	for _, sub := range subs {
		subsByType[sub.ChallengeType] = append(subsByType[sub.ChallengeType], sub)
	}

	challenges := make([]models.Challenge, 0, len(models.ChallengeCatalog))
	for _, def := range models.ChallengeCatalog {
		ch := models.Challenge{
			ChallengeDefinition: def,
			Status:              models.DeriveChallengeStatus(subsByType[def.Type]),
			Progress: models.ChallengeProgressView{
				Target: def.Target.Value,
			},
		}
		if prog, ok := byType[def.Type]; ok {
			ch.Progress.Current = prog.Current
			ch.CompletedAt = prog.CompletedAt
			ch.LastUpdated = prog.LastUpdated
		}
		if ch.Status == models.StatusCompleted {
			ch.Progress.Current = def.Target.Value
		}
		ch.Progress.Percentage = models.ProgressPercentage(ch.Progress.Current, def.Target.Value)
		challenges = append(challenges, ch)
	}
	return challenges, nil
}

// IncrementProgress adds amount to the challenge counter, clamped to
// [0, target]. It never touches status — only the verification transitions
// advance the state machine.
func (s *ChallengeService) IncrementProgress(userID string, challengeType models.ChallengeType, amount int, metadata map[string]string) (*models.ChallengeProgress, error) {
	def := models.DefinitionByType(challengeType)
	if def == nil {
		return nil, apperrors.NotFound("unknown challenge %s", challengeType)
	}
	if amount <= 0 {
		return nil, apperrors.Validation("amount must be positive")
	}

	prog, err := s.Store.IncrementProgress(userID, challengeType, amount, def.Target.Value, metadata)
	if err != nil {
		log.Printf("❌ [CHALLENGE] increment failed for user=%s challenge=%s: %v", userID, challengeType, err)
		return nil, err
	}
	log.Printf("🏆 [CHALLENGE] user=%s challenge=%s current=%d/%d", userID, challengeType, prog.Current, def.Target.Value)
	return prog, nil
}
