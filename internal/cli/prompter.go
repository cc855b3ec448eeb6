package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/risk-profiler/internal/engine"
	"github.com/Veraticus/risk-profiler/internal/model"
)

// ErrInputTerminated is returned when input ends before a prompt is answered.
var ErrInputTerminated = errors.New("input terminated")

// Prompter implements engine.Prompter with line-based terminal prompts.
type Prompter struct {
	writer      io.Writer
	reader      *NonBlockingReader
	progressBar *progressbar.ProgressBar
}

// NewCLIPrompter creates a new CLI prompter with the given reader and writer.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// AskClientName prompts until a non-empty client name is entered.
func (p *Prompter) AskClientName(ctx context.Context) (string, error) {
	if _, err := fmt.Fprintln(p.writer, FormatTitle("Profilazione del Rischio")); err != nil {
		return "", fmt.Errorf("failed to write title: %w", err)
	}

	for {
		name, err := p.promptLine(ctx, "Nome Cliente")
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
		p.warn("Il nome del cliente è obbligatorio.")
	}
}

// AskAnswers walks the questionnaire in catalog order.
func (p *Prompter) AskAnswers(ctx context.Context, questions []model.QuestionDefinition) (model.AnswerSet, error) {
	p.startProgress(len(questions))
	defer p.finishProgress()

	answers := make(model.AnswerSet, len(questions))
	for i, q := range questions {
		var b strings.Builder
		b.WriteString(q.Prompt)
		b.WriteString("\n")
		choices := make([]string, len(q.Options))
		for j, opt := range q.Options {
			choices[j] = strconv.Itoa(j + 1)
			fmt.Fprintf(&b, "\n  [%d] %s", j+1, opt.Label)
		}

		title := fmt.Sprintf("%s · %s", q.Key, q.Area.Label())
		if _, err := fmt.Fprintln(p.writer, RenderBox(title, b.String())); err != nil {
			return nil, fmt.Errorf("failed to write question %s: %w", q.Key, err)
		}

		choice, err := p.promptChoice(ctx, "Risposta", choices, "")
		if err != nil {
			return nil, err
		}
		idx, _ := strconv.Atoi(choice)
		answers[i] = q.Options[idx-1].Label

		p.updateProgress()
	}

	return answers, nil
}

// AskDesiredProfile lets the client pick a band. Enter keeps preselected.
func (p *Prompter) AskDesiredProfile(ctx context.Context, bands []model.ProfileBand, preselected string) (string, error) {
	var b strings.Builder
	choices := make([]string, len(bands))
	defaultChoice := ""
	for i, band := range bands {
		choices[i] = strconv.Itoa(i + 1)
		marker := ""
		if band.Name == preselected {
			defaultChoice = choices[i]
			marker = SubtleStyle.Render(" (predefinito)")
		}
		fmt.Fprintf(&b, "  [%d] %s%s\n", i+1, band.Name, marker)
	}

	if _, err := fmt.Fprintln(p.writer, RenderBox("Profilo di Rischio Desiderato", strings.TrimRight(b.String(), "\n"))); err != nil {
		return "", fmt.Errorf("failed to write profile options: %w", err)
	}

	choice, err := p.promptChoice(ctx, "Profilo", choices, defaultChoice)
	if err != nil {
		return "", err
	}
	idx, _ := strconv.Atoi(choice)
	return bands[idx-1].Name, nil
}

// AskJustification explains the gap and reads a free-text justification.
// An empty line is a valid answer.
func (p *Prompter) AskJustification(ctx context.Context, classification model.ClassificationResult, desired string) (string, error) {
	content := fmt.Sprintf("Profilo calcolato: %s\nProfilo desiderato: %s\n\n%s",
		BoldStyle.Render(classification.FinalProfileName),
		BoldStyle.Render(desired),
		SubtleStyle.Render("Motivare la scelta del cliente (invio per lasciare vuoto)."))
	if _, err := fmt.Fprintln(p.writer, RenderBox(WarningIcon+" Profilo Disallineato", content)); err != nil {
		return "", fmt.Errorf("failed to write gap warning: %w", err)
	}

	return p.promptLine(ctx, "Giustificazione")
}

func (p *Prompter) promptLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputTerminated
		}
		return "", err
	}
	return line, nil
}

// promptChoice reads until one of validChoices is entered. An empty line
// selects defaultChoice when it is set.
func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string, defaultChoice string) (string, error) {
	for {
		input, err := p.promptLine(ctx, prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		if choice == "" && defaultChoice != "" {
			return defaultChoice, nil
		}
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		p.warn("Scelta non valida. Riprova.")
	}
}

func (p *Prompter) warn(msg string) {
	if _, err := fmt.Fprintln(p.writer, FormatError(msg)); err != nil {
		slog.Warn("Failed to write error message", "error", err)
	}
}

func (p *Prompter) startProgress(total int) {
	p.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][bold]Questionario[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func (p *Prompter) updateProgress() {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
	if _, err := fmt.Fprintln(p.writer); err != nil {
		slog.Warn("Failed to write newline after progress bar", "error", err)
	}
}

func (p *Prompter) finishProgress() {
	p.progressBar = nil
}

var _ engine.Prompter = (*Prompter)(nil)
