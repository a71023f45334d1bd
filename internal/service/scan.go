package service

import (
	"context"
	"fmt"

	"guild-tracker/internal/api"
	"guild-tracker/internal/constants"
	"guild-tracker/internal/domain"
	"guild-tracker/internal/ocr"
	"guild-tracker/internal/repository"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

type ScanResult struct {
	Entries []domain.OCREntry      `json:"entries"`
	Report  domain.ReconcileReport `json:"report"`
}

type MemberScanResult struct {
	Member domain.Member `json:"member"`
	Found  bool          `json:"found"`
	Damage int64         `json:"damage"`
	Plays  *int64        `json:"plays,omitempty"`
}

// Recognizer turns a screenshot into text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

type ScanService struct {
	store      *repository.Store
	recognizer Recognizer
	logger     zerolog.Logger
}

func NewScanService(store *repository.Store, recognizer *api.RecognitionClient, logger zerolog.Logger) *ScanService {
	return newScanService(store, recognizer, logger)
}

func newScanService(store *repository.Store, recognizer Recognizer, logger zerolog.Logger) *ScanService {
	return &ScanService{store: store, recognizer: recognizer, logger: logger}
}

// ScanText parses a recognised leaderboard and writes the scores of every
// known member into the boss column bossIndex.
func (s *ScanService) ScanText(ctx context.Context, text string, bossIndex int) (*ScanResult, error) {
	if err := checkBossIndex(bossIndex); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	result := &ScanResult{}
	_, err := s.store.Update(ctx, func(st *repository.State) error {
		result.Entries = ocr.ParseEntries(text, ocr.ParseOptions{
			Keywords: ocr.SplitKeywords(st.Settings.Config.OCRKeywords),
		})
		result.Report = ocr.Reconcile(result.Entries, st.Roster, bossIndex)
		st.Roster = result.Report.Roster
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply scan: %w", err)
	}

	var total int64
	for _, e := range result.Entries {
		total += e.Damage
	}
	s.logger.Info().
		Int("boss_index", bossIndex).
		Int("entries", len(result.Entries)).
		Int("updated", result.Report.Updated).
		Strs("unmatched", result.Report.Unmatched).
		Str("damage", humanize.Comma(total)).
		Msg("scan applied")

	return result, nil
}

func (s *ScanService) ScanImage(ctx context.Context, image []byte, bossIndex int) (*ScanResult, error) {
	if err := checkBossIndex(bossIndex); err != nil {
		return nil, err
	}
	if len(image) == 0 || len(image) > constants.MaxImageBytes {
		return nil, fmt.Errorf("%w: image must be between 1 byte and %s", ErrInvalidArgument, humanize.IBytes(constants.MaxImageBytes))
	}

	text, err := s.recognize(ctx, image)
	if err != nil {
		return nil, err
	}
	return s.ScanText(ctx, text, bossIndex)
}

// ScanMember reads a single-player result screen and stores its score for
// one member. Nothing is written when no score is found.
func (s *ScanService) ScanMember(ctx context.Context, id string, bossIndex int, text string) (*MemberScanResult, error) {
	if err := checkBossIndex(bossIndex); err != nil {
		return nil, err
	}

	result := &MemberScanResult{}
	damage, ok := ocr.LargestNumber(text)
	if plays, found := ocr.FindPlays(text); found {
		result.Plays = &plays
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if !ok {
		m, err := s.store.Members.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		result.Member = *m
		return result, nil
	}

	result.Found = true
	result.Damage = damage

	_, err := s.store.Update(ctx, func(st *repository.State) error {
		idx := indexOf(st.Roster, id)
		if idx < 0 {
			return ErrMemberNotFound
		}
		m := &st.Roster[idx]
		if bossIndex >= 0 {
			m.D[bossIndex] = damage
			if result.Plays != nil {
				m.V[bossIndex] = *result.Plays
			}
		} else {
			m.V2 = damage
		}
		result.Member = *m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("member_id", id).
		Int("boss_index", bossIndex).
		Str("damage", humanize.Comma(damage)).
		Msg("member score scanned")
	return result, nil
}

// ScanMemberImage is ScanMember for a screenshot.
func (s *ScanService) ScanMemberImage(ctx context.Context, id string, bossIndex int, image []byte) (*MemberScanResult, error) {
	if err := checkBossIndex(bossIndex); err != nil {
		return nil, err
	}
	if len(image) == 0 || len(image) > constants.MaxImageBytes {
		return nil, fmt.Errorf("%w: image must be between 1 byte and %s", ErrInvalidArgument, humanize.IBytes(constants.MaxImageBytes))
	}

	text, err := s.recognize(ctx, image)
	if err != nil {
		return nil, err
	}
	return s.ScanMember(ctx, id, bossIndex, text)
}

func (s *ScanService) recognize(ctx context.Context, image []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RecognitionTimeout)
	defer cancel()

	text, err := s.recognizer.Recognize(ctx, image)
	if err != nil {
		s.logger.Error().Err(err).Int("bytes", len(image)).Msg("text recognition failed")
		return "", fmt.Errorf("failed to recognise image: %w", err)
	}
	return text, nil
}
