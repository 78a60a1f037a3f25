package rules

var (
	_ Rule = (*RegionRule)(nil)
	_ Rule = (*NumberRule)(nil)
	_ Rule = (*URIRule)(nil)
	_ Rule = (*WordRule)(nil)
	_ Rule = (*RegexRule)(nil)
)
