package query

type IndexSummary struct {
	Name          string
	KeyCount      int
	EntryCount    int
	ExternalCount int
}

type ClosureResult struct {
	Index       string
	SeedCount   int
	MemberCount int
	Members     []string
}
