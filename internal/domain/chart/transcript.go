package chart

import (
	"strings"
	"unicode"
)

type Speaker string

const (
	SpeakerDoctor  Speaker = "doctor"
	SpeakerPatient Speaker = "patient"
)

// Turn is one utterance in a visit conversation.
type Turn struct {
	Speaker  Speaker `json:"speaker"`
	Name     string  `json:"name"`
	Initials string  `json:"initials"`
	Text     string  `json:"text"`
	Time     string  `json:"time"`
}

// Conversation splits a transcript into speaker turns. Lines of the form
// "[10:02] Doctor: text" or "Patient: text" start a new turn. An unlabeled
// line continues the previous turn; after a blank line it starts a new turn
// for the same speaker (the doctor when nobody has spoken yet). Names are
// taken from the visit's provider and the patient.
func Conversation(transcript, doctorName, patientName string) []Turn {
	var turns []Turn
	paragraph := true
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			paragraph = true
			continue
		}
		ts, rest := splitTimestamp(line)
		speaker, text, ok := splitSpeaker(rest)
		if !ok {
			n := len(turns)
			if n > 0 && !paragraph {
				turns[n-1].Text += " " + line
				continue
			}
			speaker, text = SpeakerDoctor, rest
			if n > 0 {
				speaker = turns[n-1].Speaker
			}
		}
		paragraph = false
		name := doctorName
		if speaker == SpeakerPatient {
			name = patientName
		}
		turns = append(turns, Turn{
			Speaker:  speaker,
			Name:     name,
			Initials: Initials(name),
			Text:     text,
			Time:     ts,
		})
	}
	return turns
}

// Initials returns up to two leading letters of the words in name, so
// "Dr. Sarah Miller" becomes "DS".
func Initials(name string) string {
	var b strings.Builder
	for i, w := range strings.Fields(name) {
		if i == 2 {
			break
		}
		b.WriteRune(unicode.ToUpper([]rune(w)[0]))
	}
	return b.String()
}

func splitTimestamp(line string) (string, string) {
	if !strings.HasPrefix(line, "[") {
		return "", line
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return "", line
	}
	return line[1:end], strings.TrimSpace(line[end+1:])
}

func splitSpeaker(line string) (Speaker, string, bool) {
	label, text, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "doctor", "dr", "provider":
		return SpeakerDoctor, strings.TrimSpace(text), true
	case "patient":
		return SpeakerPatient, strings.TrimSpace(text), true
	}
	return "", "", false
}
