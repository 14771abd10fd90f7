package projections

import (
	"errors"

	"talenttrack/internal/domain/challenge"
)

// ErrInvalidFilter is returned for an unknown type or category filter.
var ErrInvalidFilter = errors.New("unknown filter value")

// QueryChallenges lists challenges of one type, or all of them for FilterAll or "".
// POST: Catalog order is preserved
func QueryChallenges(challengeType string, src ChallengeSource) ([]challenge.Challenge, error) {
	all := src.Challenges()
	if challengeType == "" || challengeType == FilterAll {
		return all, nil
	}
	if !challenge.IsValidType(challengeType) {
		return nil, ErrInvalidFilter
	}
	out := []challenge.Challenge{}
	for _, c := range all {
		if c.Type == challengeType {
			out = append(out, c)
		}
	}
	return out, nil
}
