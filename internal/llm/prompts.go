package llm

import (
	_ "embed"
	"strings"
	"text/template"
)

//go:embed prompts/job_extraction.md
var jobExtractionPromptRaw string

//go:embed prompts/cold_email.md
var coldEmailPromptRaw string

// JobExtractionTemplate is the parsed prompt template for job extraction.
// Parsed once at package init; reused on every ExtractJobs call.
var JobExtractionTemplate = template.Must(template.New("job_extraction").Parse(jobExtractionPromptRaw))

// ColdEmailTemplate is the parsed prompt template for email composition.
var ColdEmailTemplate = template.Must(
	template.New("cold_email").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(coldEmailPromptRaw),
)
