package scoring

import (
	"context"
	"maps"
	"slices"
	"sort"

	"github.com/okian/advisor/internal/domain/model"
)

// modeOrder breaks ties between channels with the same share.
//
//nolint:gochecknoglobals // fixed ordering
var modeOrder = []model.ApplicationMode{
	model.ModeSpontaneousApplication,
	model.ModePlacementAgency,
	model.ModePersonalOrProfessionalContacts,
	model.ModeOtherChannels,
	model.ModeUndefined,
}

// RankApplicationModes merges the distributions of every sub-code and
// returns the channels from the most to the least used. Each sub-code is
// normalized first, so sub-codes weigh the same whatever their scale.
// Channels missing from every sub-code are not ranked.
func RankApplicationModes(distributions map[string]model.ModesDistribution) []model.ApplicationMode {
	shares := make(map[model.ApplicationMode]float64, len(modeOrder))
	for _, code := range slices.Sorted(maps.Keys(distributions)) {
		perMode := make(map[model.ApplicationMode]float64, len(modeOrder))
		for _, m := range distributions[code].Modes {
			perMode[m.Mode] += m.Percentage
		}
		var total float64
		for _, mode := range modeOrder {
			total += perMode[mode]
		}
		if total <= 0 {
			continue
		}
		for _, mode := range modeOrder {
			if pct, ok := perMode[mode]; ok {
				shares[mode] += pct / total
			}
		}
	}

	ranked := make([]model.ApplicationMode, 0, len(shares))
	for _, mode := range modeOrder {
		if _, ok := shares[mode]; ok {
			ranked = append(ranked, mode)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return shares[ranked[i]] > shares[ranked[j]]
	})
	return ranked
}

// spontaneousApplicationModel rates spontaneous applications by how often
// people get hired through them in the target job group.
type spontaneousApplicationModel struct{ noExtraData }

func (spontaneousApplicationModel) Score(ctx context.Context, p *Project) (float64, error) {
	info, ok, err := p.JobGroupInfo(ctx)
	if err != nil || !ok {
		return 0, err
	}
	switch slices.Index(RankApplicationModes(info.ApplicationModes), model.ModeSpontaneousApplication) {
	case 0:
		return 3, nil
	case 1:
		return 2, nil
	default:
		return 0, nil
	}
}
