package interview

import (
	"fmt"

	"github.com/jrsteele09/go-interview-server/candidates"
)

// Speaker identifies who a transcript message is from.
type Speaker string

const (
	SpeakerSystem Speaker = "system"
	SpeakerUser   Speaker = "user"
	SpeakerBot    Speaker = "bot"
)

// Message is one line of an interview transcript.
type Message struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Observer receives each transcript message as it is appended.
// It runs while the session is locked and must not call back into the Service.
type Observer func(sessionID string, msg Message)

const (
	msgProcessingResume = "Processing your resume..."
	msgWrongFileType    = "Please upload a PDF or DOCX file."
	msgResumeUnreadable = "Sorry, your resume could not be processed. Please try again."
	msgEvaluating       = "Evaluating your answer..."
	msgTimeUp           = "Time is up! Moving to the next question."
	msgCompleted        = "Interview completed!"
)

func welcomeLine(email string) string {
	return fmt.Sprintf("Welcome, %s! Please upload your resume to begin.", email)
}

func uploadedLine(name string) string {
	return fmt.Sprintf("Uploaded: %s", name)
}

func needFieldLine(field candidates.Field) string {
	return fmt.Sprintf("I need your %s to continue.", field)
}

func nextFieldLine(field candidates.Field) string {
	return fmt.Sprintf("Thanks! Now, please provide your %s.", field)
}

func startLine(name string) string {
	return fmt.Sprintf("Great! Let's start the interview, %s!", name)
}

func beginLine(name string) string {
	return fmt.Sprintf("Perfect! Let's begin, %s!", name)
}

func scoreLine(score int, feedback string) string {
	return fmt.Sprintf("Score: %d/100. %s", score, feedback)
}

func finalLine(total int, summary string) string {
	return fmt.Sprintf("Final Score: %d/100. %s", total, summary)
}
