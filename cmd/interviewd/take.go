package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jrsteele09/go-interview-server/extraction"
	"github.com/jrsteele09/go-interview-server/internal/config"
	apperr "github.com/jrsteele09/go-interview-server/internal/errors"
	"github.com/jrsteele09/go-interview-server/internal/logging"
	"github.com/jrsteele09/go-interview-server/interview"
	"github.com/jrsteele09/go-interview-server/questions"
	"github.com/jrsteele09/go-interview-server/sessions"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	takeEmail    string
	takePasskey  string
	takeResume   string
	takeLogLevel string
)

// msgSaveFailed prefixes the notice shown when the final write fails. Any input line retries it.
const msgSaveFailed = "Could not save the interview"

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Take an interview on the console",
	Long:  "Prompts for your email, an optional passkey and a resume file, then asks six timed questions. Type each answer on one line.",
	RunE:  runTake,
}

func init() {
	takeCmd.Flags().StringVar(&takeEmail, "email", "", "candidate email (prompted when empty)")
	takeCmd.Flags().StringVar(&takePasskey, "passkey", "", "interview passkey")
	takeCmd.Flags().StringVar(&takeResume, "resume", "", "path to a .pdf or .docx resume (prompted when empty)")
	takeCmd.Flags().StringVar(&takeLogLevel, "log-level", "warn", "log level for the console session")
	rootCmd.AddCommand(takeCmd)
}

func runTake(cmd *cobra.Command, _ []string) error {
	cfg := config.New()
	logger := logging.New(os.Stderr, takeLogLevel, false)
	out := cmd.OutOrStdout()

	a, err := newApp(cmd.Context(), cfg, logger, interview.WithObserver(printMessage(out)))
	if err != nil {
		return err
	}
	defer a.Close()

	c := &console{
		service: a.service,
		out:     out,
		answers: bufio.NewScanner(cmd.InOrStdin()),
		ask:     askPrompt,
	}
	return c.run(cmd.Context(), takeEmail, takePasskey, takeResume)
}

// printMessage renders transcript lines as they are appended.
func printMessage(out io.Writer) interview.Observer {
	return func(_ string, msg interview.Message) {
		switch msg.Speaker {
		case interview.SpeakerUser:
			return // already on screen
		case interview.SpeakerSystem:
			fmt.Fprintf(out, "[!] %s\n", msg.Text)
		default:
			fmt.Fprintf(out, "> %s\n", msg.Text)
		}
	}
}

func askPrompt(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{Label: label, Validate: validate}
	return prompt.Run()
}

// console drives one interview from a terminal.
type console struct {
	service *interview.Service
	out     io.Writer
	answers *bufio.Scanner
	ask     func(label string, validate func(string) error) (string, error)
}

func (c *console) run(ctx context.Context, email, passkey, resume string) error {
	id, err := c.open(ctx, email, passkey)
	if err != nil {
		return err
	}
	if err := c.upload(ctx, id, resume); err != nil {
		return err
	}
	return c.converse(ctx, id)
}

func (c *console) open(ctx context.Context, email, passkey string) (string, error) {
	var err error
	if email == "" {
		email, err = c.ask("Email", func(s string) error {
			if !strings.Contains(s, "@") {
				return errors.New("enter a valid email address")
			}
			return nil
		})
		if err != nil {
			return "", errors.Wrap(err, "[take] email prompt")
		}
		if passkey == "" {
			if passkey, err = c.ask("Passkey (optional)", nil); err != nil {
				return "", errors.Wrap(err, "[take] passkey prompt")
			}
		}
	}
	return c.service.CreateSession(ctx, email, passkey)
}

func (c *console) upload(ctx context.Context, id, resume string) error {
	for {
		if resume == "" {
			var err error
			if resume, err = c.ask("Resume file (.pdf or .docx)", nil); err != nil {
				return errors.Wrap(err, "[take] resume prompt")
			}
		}
		content, err := os.ReadFile(strings.TrimSpace(resume))
		if err != nil {
			fmt.Fprintf(c.out, "Could not read %s: %v\n", resume, err)
			resume = ""
			continue
		}
		doc := extraction.Document{Name: filepath.Base(resume), Size: int64(len(content)), Content: content}
		err = c.service.SubmitUpload(ctx, id, doc)
		if err == nil {
			return nil
		}
		if !apperr.Is(err, apperr.ErrValidation) {
			fmt.Fprintf(c.out, "Upload failed: %v\n", err)
		}
		resume = ""
	}
}

// converse feeds one line per submission until the interview completes or input ends.
func (c *console) converse(ctx context.Context, id string) error {
	for !c.completed(ctx, id) {
		if !c.answers.Scan() {
			if err := c.answers.Err(); err != nil {
				return errors.Wrap(err, "[take] read answer")
			}
			fmt.Fprintln(c.out, "Input closed before the interview finished.")
			return nil
		}

		if c.awaitingSave(ctx, id) {
			if err := c.service.Finalize(ctx, id); err != nil {
				fmt.Fprintf(c.out, "%s: %v. Press Enter to retry.\n", msgSaveFailed, err)
			}
			continue
		}

		err := c.service.SubmitText(ctx, id, c.answers.Text())
		var validation *apperr.ValidationError
		switch {
		case err == nil:
		case apperr.As(err, &validation):
			fmt.Fprintf(c.out, "%s\n", validation.Reason)
		case apperr.Is(err, apperr.ErrSessionCompleted):
			return nil
		case c.awaitingSave(ctx, id):
			fmt.Fprintf(c.out, "%s: %v. Press Enter to retry.\n", msgSaveFailed, err)
		case apperr.Is(err, apperr.ErrBusy), apperr.Is(err, apperr.ErrWrongStage):
			fmt.Fprintln(c.out, "Please wait...")
		default:
			return err
		}
	}
	return nil
}

// awaitingSave reports whether every answer is in but the interview has not been stored yet.
func (c *console) awaitingSave(ctx context.Context, id string) bool {
	session, err := c.service.Snapshot(ctx, id)
	return err == nil && session.Stage == sessions.StageInProgress && session.QuestionIndex >= questions.Total
}

func (c *console) completed(ctx context.Context, id string) bool {
	session, err := c.service.Snapshot(ctx, id)
	return err == nil && session.Stage == sessions.StageCompleted
}
