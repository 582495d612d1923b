package letterboxd

// Film is a single entry of a Letterboxd list. Year is 0 when the list page
// does not expose one.
type Film struct {
	Title string
	Slug  string
	Year  int
}
