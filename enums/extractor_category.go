package enums

type ExtractorCategory string

const (
	ExtractorCategorySocial ExtractorCategory = "social"
)
