package scoring

// Keywords holds the reference lists driving the matcher, extractor, and
// scorer. Loaded once at startup and injected; the lists used for scoring
// are lowercase because scoring lowercases its haystacks, while the
// extractor lists keep canonical casing because matches record the list
// entry itself.
type Keywords struct {
	Technologies       []string
	Agencies           []string
	Certifications     []string
	PerformancePhrases []string

	ExtractorAgencies []string
	ExtractorSkills   []string
}

// DefaultKeywords returns the built-in reference lists
func DefaultKeywords() Keywords {
	return Keywords{
		Technologies: []string{
			"cloud",
			"aws",
			"azure",
			"cybersecurity",
			"devsecops",
			"software development",
			"data analytics",
			"artificial intelligence",
			"machine learning",
			"kubernetes",
			"network",
			"help desk",
			"it support",
			"systems engineering",
			"logistics",
		},
		Agencies: []string{
			"army",
			"navy",
			"air force",
			"dod",
			"defense",
			"dhs",
			"homeland security",
			"veterans affairs",
			"gsa",
			"nasa",
			"hhs",
			"department of energy",
			"agriculture",
			"transportation",
			"treasury",
		},
		Certifications: []string{
			"cmmi",
			"iso 9001",
			"iso 27001",
			"8(a)",
			"hubzone",
			"sdvosb",
			"wosb",
			"fedramp",
			"cmmc",
			"top secret",
		},
		PerformancePhrases: []string{
			"past performance",
			"cpars",
			"successfully delivered",
			"on time",
			"under budget",
		},
		ExtractorAgencies: []string{
			"Department of Defense",
			"DoD",
			"Department of Homeland Security",
			"DHS",
			"Department of Veterans Affairs",
			"Veterans Affairs",
			"General Services Administration",
			"GSA",
			"NASA",
			"Department of Energy",
			"DOE",
			"Department of Health and Human Services",
			"HHS",
			"U.S. Army",
			"U.S. Navy",
			"U.S. Air Force",
			"Department of Agriculture",
			"USDA",
			"Department of Transportation",
			"Department of Justice",
			"DOJ",
			"Department of State",
			"Department of the Treasury",
			"Environmental Protection Agency",
			"EPA",
		},
		ExtractorSkills: []string{
			"cloud computing",
			"cloud migration",
			"cybersecurity",
			"zero trust",
			"identity management",
			"penetration testing",
			"incident response",
			"software development",
			"web development",
			"mobile development",
			"data analytics",
			"data engineering",
			"business intelligence",
			"artificial intelligence",
			"machine learning",
			"devsecops",
			"agile",
			"network engineering",
			"systems engineering",
			"enterprise architecture",
			"database administration",
			"virtualization",
			"robotic process automation",
			"geospatial",
			"help desk",
			"it support",
			"program management",
			"logistics",
			"training",
			"technical writing",
		},
	}
}
