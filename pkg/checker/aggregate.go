package checker

// FileFindings holds the findings of one file, ordered by line.
type FileFindings struct {
	File     string    `json:"file" yaml:"file"`
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Summary counts findings across a run.
type Summary struct {
	Total      int              `json:"total" yaml:"total"`
	Files      int              `json:"files" yaml:"files"`
	ByCategory map[Category]int `json:"by_category,omitempty" yaml:"by_category,omitempty"`
}

// GroupByFile groups findings by file in order of first appearance and sorts
// each group by line.
func GroupByFile(findings []Finding) []FileFindings {
	var groups []FileFindings
	index := make(map[string]int)

	for _, f := range findings {
		i, ok := index[f.File]
		if !ok {
			i = len(groups)
			index[f.File] = i
			groups = append(groups, FileFindings{File: f.File})
		}
		groups[i].Findings = append(groups[i].Findings, f)
	}

	for i := range groups {
		sortByLine(groups[i].Findings)
	}
	return groups
}

// Summarize counts findings, affected files and findings per category.
func Summarize(findings []Finding) Summary {
	s := Summary{Total: len(findings)}
	if len(findings) == 0 {
		return s
	}

	files := make(map[string]struct{})
	s.ByCategory = make(map[Category]int)
	for _, f := range findings {
		files[f.File] = struct{}{}
		s.ByCategory[f.Category]++
	}
	s.Files = len(files)
	return s
}
