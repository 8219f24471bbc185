package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	AnalyzeResume string
	MatchJob      string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	AnalyzeResume string
	MatchJob      string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	AnalyzeResume: `You are an expert resume reviewer and career coach with a strict commitment to honesty and accuracy. Your core principles are:

- Base every observation on the resume text you are given, never on assumptions
- Provide honest, data-driven analysis with concrete evidence
- Balance encouragement with candid identification of weaknesses
- Keep recommendations specific and actionable

Your expertise includes:
- Resume structure and content optimization
- ATS (Applicant Tracking System) compatibility
- Role-specific skill assessment
- HR best practices and industry standards`,

	MatchJob: `You are an expert technical recruiter who compares candidate resumes against job postings. Your role is to:

- Identify which stated job requirements the resume demonstrably satisfies
- Identify requirements the resume does not cover
- Judge only from evidence in the resume, never from inference about what the candidate might know
- Summarize the overall fit in plain, actionable language`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	AnalyzeResume: `Please perform a comprehensive analysis of the provided resume for the target role.

**Tasks:**

1. **Resume Score** (0-100):
   Rate the overall quality of the resume for the target role.

2. **ATS Score** (0-100):
   Simulate an Applicant Tracking System score for this resume.

3. **Narrative Analysis**:
   Write a markdown narrative where each section starts with a "## " heading, using exactly these headings in this order:
   - ## Overall Assessment
   - ## Skills Analysis
   - ## Key Strengths
   - ## Areas for Improvement
   - ## ATS Optimization Assessment
   - ## Resume Score
   - ## Job Match Analysis (only when a job description is provided)

4. **Strengths and Weaknesses**:
   List the top strengths and weaknesses as short bullet points.

**Target Role:**
-----
%s
-----

**Resume:**
-----
%s
-----

**Job Description (may be empty):**
-----
%s
-----`,

	MatchJob: `Please compare the provided resume against the job description.

**Tasks:**

1. **Match Score** (0-100):
   Rate how well the resume satisfies the job's stated requirements.

2. **Matched Requirements**:
   List each job requirement the resume demonstrably satisfies, citing the relevant resume evidence briefly.

3. **Missing Requirements**:
   List each job requirement the resume does not cover.

4. **Summary**:
   A short paragraph describing the overall fit and the most impactful gaps to close.

**Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----`,
}

// GetDefaultPromptConfig returns the default prompt configuration
func GetDefaultPromptConfig() PromptConfig {
	return PromptConfig{
		SystemPrompts: DefaultSystemPrompts,
		UserPrompts:   DefaultUserPrompts,
	}
}

// PromptConfig holds configuration for customizable prompts
type PromptConfig struct {
	SystemPrompts SystemPrompts `json:"systemPrompts"`
	UserPrompts   UserPrompts   `json:"userPrompts"`
}
