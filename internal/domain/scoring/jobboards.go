package scoring

import (
	"context"
	"sort"

	"github.com/okian/advisor/internal/domain/filter"
	"github.com/okian/advisor/internal/domain/model"
)

// JobBoardData is the job board backing the job boards advice.
type JobBoardData struct {
	JobBoardTitle string `json:"jobBoardTitle"`
	Link          string `json:"link,omitempty"`
}

// JobBoardsCard lists the boards relevant to the seeker, most specific first.
type JobBoardsCard struct {
	JobBoards []model.JobBoard `json:"jobBoards"`
}

type candidateBoard struct {
	board  model.JobBoard
	scoped bool
	size   int
}

// EligibleJobBoards returns the boards whose filters match the project, in
// stored order. Well-known boards are only returned when no other board is
// eligible.
func EligibleJobBoards(ctx context.Context, p *Project) ([]model.JobBoard, error) {
	candidates, err := eligibleBoards(ctx, p)
	if err != nil {
		return nil, err
	}
	boards := make([]model.JobBoard, len(candidates))
	for i, c := range candidates {
		boards[i] = c.board
	}
	return boards, nil
}

func eligibleBoards(ctx context.Context, p *Project) ([]candidateBoard, error) {
	boards, err := p.JobBoards(ctx)
	if err != nil {
		return nil, err
	}
	var eligible, wellKnown []candidateBoard
	for _, b := range boards {
		filters, err := filter.ParseAll(b.Filters)
		if err != nil {
			return nil, err
		}
		if !filters.Matches(p) {
			continue
		}
		c := candidateBoard{board: b, scoped: filters.HasDepartementScope(), size: len(filters)}
		if b.IsWellKnown {
			wellKnown = append(wellKnown, c)
		} else {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return wellKnown, nil
	}
	return eligible, nil
}

// SelectJobBoard picks the most specific eligible board: the first one scoped
// to the seeker's departement, else the first eligible one.
func SelectJobBoard(ctx context.Context, p *Project) (model.JobBoard, bool, error) {
	candidates, err := eligibleBoards(ctx, p)
	if err != nil || len(candidates) == 0 {
		return model.JobBoard{}, false, err
	}
	for _, c := range candidates {
		if c.scoped {
			return c.board, true, nil
		}
	}
	return candidates[0].board, true, nil
}

type jobBoardsModel struct{}

func (jobBoardsModel) Score(ctx context.Context, p *Project) (float64, error) {
	_, ok, err := SelectJobBoard(ctx, p)
	if err != nil || !ok {
		return 0, err
	}
	if p.Profile().HasFrustration(model.FrustrationNoOffers) {
		return 3, nil
	}
	if p.Details().WeeklyOffersEstimate >= model.VolumeDecent {
		return 1, nil
	}
	return 2, nil
}

func (jobBoardsModel) ExtraData(ctx context.Context, p *Project) (any, error) {
	board, ok, err := SelectJobBoard(ctx, p)
	if err != nil || !ok {
		return nil, err
	}
	return JobBoardData{JobBoardTitle: board.Title, Link: board.Link}, nil
}

// CardData lists the eligible boards, departement scoped ones first, then by
// decreasing number of filters.
func (jobBoardsModel) CardData(ctx context.Context, p *Project) (any, error) {
	candidates, err := eligibleBoards(ctx, p)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].scoped != candidates[j].scoped {
			return candidates[i].scoped
		}
		return candidates[i].size > candidates[j].size
	})
	card := JobBoardsCard{JobBoards: make([]model.JobBoard, len(candidates))}
	for i, c := range candidates {
		card.JobBoards[i] = c.board
	}
	return card, nil
}
