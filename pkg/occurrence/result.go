package occurrence

// Label classifies how close a species' occurrences are to the area
// of interest.
type Label string

const (
	// LabelInsideArea means at least one occurrence is contained in the
	// area (boundary inclusive).
	LabelInsideArea Label = "inside-area"

	// LabelVeryNear means the closest occurrence is less than 1 km away.
	LabelVeryNear Label = "very-near"

	// LabelNear means the closest occurrence is less than 50 km away.
	LabelNear Label = "near"

	// LabelModeratelyNear means the closest occurrence is within the
	// relevance threshold, but 50 km or more away.
	LabelModeratelyNear Label = "moderately-near"

	// LabelFar means the closest occurrence is at or beyond the
	// relevance threshold.
	LabelFar Label = "far"

	// LabelNotFound means the source returned no records at all.
	LabelNotFound Label = "not-found"

	// LabelInsufficientData means records came back, but none carried
	// usable coordinates.
	LabelInsufficientData Label = "insufficient-data"

	// LabelSearchFailed means the search for this one species failed
	// after exhausting retries; the batch continued without it.
	LabelSearchFailed Label = "search-failed"
)

// NoScore is the sentinel for "no score could be computed". It is
// reserved outside the valid [0,10] range so it can never be confused
// with a real proximity score.
const NoScore = -1

// ProximityResult is the outcome of analyzing one species against the
// area of interest. It is created exactly once per input query and
// never mutated afterwards.
type ProximityResult struct {
	// Species is the scientific name from the input query.
	Species string `json:"species"`

	Label Label `json:"label"`

	// Detail is a human-readable elaboration of the label, for example
	// "inside area (3 records)" or "near (12.3 km)".
	Detail string `json:"detail"`

	// Score is the proximity score in [0,10], or NoScore.
	Score int `json:"score"`

	// TotalRecords is the total match count reported by the source,
	// which can be much larger than the retained page.
	TotalRecords int64 `json:"totalRecords"`

	// Longitude and Latitude point at the representative occurrence:
	// the first contained point, or the nearest one. Nil when no
	// coordinates are available.
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`

	// ContainedCount is the number of retained records inside the area.
	ContainedCount int `json:"containedCount"`

	// DistanceKm is the distance to the nearest occurrence when no
	// record is contained; NoScore otherwise.
	DistanceKm float64 `json:"distanceKm"`

	// Records keeps the fetched occurrence records for map rendering.
	Records []Record `json:"-"`
}
