package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	ExtractHistory   string
	ExtractLocation  string
	GenerateKeywords string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	ExtractHistory   string
	ExtractLocation  string
	GenerateKeywords string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	ExtractHistory: `You are a careful resume analyst. Your core principles are:

- Extract only information explicitly present in the text
- Never invent companies, positions, dates, or skills
- Keep company names exactly as written in the source
- When a detail is absent, leave the field empty rather than guessing

You transcribe work history from resume fragments into structured form.`,

	ExtractLocation: `You are a careful resume analyst. You read resume text and report
only the candidate's current location, exactly as stated in the text.
If no current location is stated, you say so rather than guessing.`,

	GenerateKeywords: `You are a job search strategist. Given a candidate's work history
you propose search keyword combinations that a recruiter would type into
a job board to find roles matching that candidate. Combinations should
range from specific to broad and stay grounded in the candidate's actual
experience.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	ExtractHistory: `Extract the work history from the resume fragment below.

Respond with a single JSON object keyed by company name, ordered from most
recent to oldest as they appear in the resume. Each value must have this shape:

{"positions": ["..."], "start_date": "MM/YYYY", "end_date": "MM/YYYY", "skills": ["..."]}

Rules:
- Use "present" as the end_date for a current role.
- Leave start_date or end_date as "" when the fragment does not state them.
- List skills mentioned for that company only.
- Do not add companies that are not in the fragment.

Resume fragment:

%s`,

	ExtractLocation: `Read the resume fragment below and report the candidate's current location.

Respond with a single JSON object of this shape:

{"current_location": "City, Country"}

If the fragment does not state a current location, respond with:

{"current_location": "None"}

Resume fragment:

%s`,

	GenerateKeywords: `Generate %d job search keyword combinations for the candidate described below.

Focus: %s

Each combination is one line of comma-separated terms (job titles and skills)
that would be typed into a job board search field. Order the lines from most
specific to broadest. Wrap the list in a <Keywords> block, one numbered line
per combination, like:

<Keywords>
1) Senior Backend Engineer, Go, Kubernetes
2) Backend Engineer, Go
<\Keywords>

Candidate work history:

%s`,
}
