package artifact

// PatientArtifact is the patient-facing visit summary.
type PatientArtifact struct {
	VisitID     string         `json:"visitId"`
	Preferences Preferences    `json:"preferences"`
	Content     PatientContent `json:"content"`
}

// Preferences only affect how the summary is presented. They never change
// Content.
type Preferences struct {
	Format        Format        `json:"format"`
	LiteracyLevel LiteracyLevel `json:"literacyLevel"`
	Language      Language      `json:"language"`
}

type PatientContent struct {
	Greeting          string   `json:"greeting"`
	Summary           string   `json:"summary"`
	Medications       []string `json:"medications"`
	NextSteps         []string `json:"nextSteps"`
	WarningSignsTitle string   `json:"warningSignsTitle"`
	WarningSigns      []string `json:"warningSigns"`
}

// Clone returns a deep copy of the artifact.
func (a PatientArtifact) Clone() PatientArtifact {
	out := a
	out.Content.Medications = cloneSlice(a.Content.Medications)
	out.Content.NextSteps = cloneSlice(a.Content.NextSteps)
	out.Content.WarningSigns = cloneSlice(a.Content.WarningSigns)
	return out
}

type Format string

const (
	FormatPDF    Format = "pdf"
	FormatVideo  Format = "video"
	FormatTikTok Format = "tiktok"
	FormatAudio  Format = "audio"
)

// LiteracyLevel is a reading grade (5, 8, 12) or "professional". Grades are
// encoded as JSON numbers.
type LiteracyLevel string

const (
	LiteracyGrade5       LiteracyLevel = "5"
	LiteracyGrade8       LiteracyLevel = "8"
	LiteracyGrade12      LiteracyLevel = "12"
	LiteracyProfessional LiteracyLevel = "professional"
)

// Valid reports whether l is one of the offered reading levels.
func (l LiteracyLevel) Valid() bool {
	switch l {
	case LiteracyGrade5, LiteracyGrade8, LiteracyGrade12, LiteracyProfessional:
		return true
	}
	return false
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageChinese Language = "zh"
	LanguageOther   Language = "other"
)

// Option is one entry of a preference picker.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var (
	FormatOptions = []Option{
		{Value: string(FormatPDF), Label: "PDF Summary"},
		{Value: string(FormatVideo), Label: "Video Explainer"},
		{Value: string(FormatTikTok), Label: "TikTok Style"},
		{Value: string(FormatAudio), Label: "Audio Version"},
	}
	LiteracyOptions = []Option{
		{Value: string(LiteracyGrade5), Label: "5th Grade"},
		{Value: string(LiteracyGrade8), Label: "8th Grade"},
		{Value: string(LiteracyGrade12), Label: "12th Grade"},
		{Value: string(LiteracyProfessional), Label: "Professional"},
	}
	LanguageOptions = []Option{
		{Value: string(LanguageEnglish), Label: "English"},
		{Value: string(LanguageSpanish), Label: "Español"},
		{Value: string(LanguageChinese), Label: "中文"},
		{Value: string(LanguageOther), Label: "Other"},
	}
)
