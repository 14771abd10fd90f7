package projections

import "talenttrack/internal/domain/catalog"

// QueryTrainingVideos lists videos of one category, or all of them for FilterAll or "".
// POST: Catalog order is preserved
func QueryTrainingVideos(category string, src VideoSource) ([]catalog.TrainingVideo, error) {
	all := src.TrainingVideos()
	if category == "" || category == FilterAll {
		return all, nil
	}
	if !catalog.IsValidVideoCategory(category) {
		return nil, ErrInvalidFilter
	}
	out := []catalog.TrainingVideo{}
	for _, v := range all {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out, nil
}
