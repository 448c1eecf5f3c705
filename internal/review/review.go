// Package review is the terminal UI gate before anything is sent: it shows
// job context alongside the generated message and collects the user's
// decision for every application.
package review

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/martin/startup-applier/internal/types"
)

// Decision is the reviewer's verdict on one message.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionEdit    Decision = "edit"
	DecisionSkip    Decision = "skip"
	DecisionQuit    Decision = "quit"
)

// ANSI color helpers.
const (
	bold    = "\033[1m"
	dim     = "\033[2m"
	red     = "\033[91m"
	green   = "\033[92m"
	yellow  = "\033[93m"
	magenta = "\033[95m"
	cyan    = "\033[96m"
	reset   = "\033[0m"
)

var notFound = dim + red + "Couldn't be found" + reset

// Reviewer reads decisions from in and renders to out. Tests inject both.
type Reviewer struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Reviewer over the given streams.
func New(in io.Reader, out io.Writer) *Reviewer {
	return &Reviewer{in: bufio.NewReader(in), out: out}
}

// NewTerminal returns a Reviewer bound to stdin/stdout.
func NewTerminal() *Reviewer {
	return New(os.Stdin, os.Stdout)
}

// Review displays job context and the message, then prompts until the user
// approves, skips, or quits. Editing loops back for another look.
func (r *Reviewer) Review(job types.Job, message string, jobNumber, totalJobs int) (Decision, string) {
	r.displayHeader(jobNumber, totalJobs)
	r.displayJobContext(job)
	r.displayMessage(message)

	edited := false
	for {
		fmt.Fprintf(r.out, "\n%s[A]pprove  [E]dit  [S]kip  [Q]uit%s > ", bold, reset)
		choice, err := r.readLine()
		if err != nil {
			return DecisionQuit, message
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "a", "approve", "":
			if edited {
				return DecisionEdit, message
			}
			return DecisionApprove, message
		case "e", "edit":
			message = r.editMessage(message)
			edited = true
			r.displayMessage(message)
		case "s", "skip":
			return DecisionSkip, message
		case "q", "quit":
			return DecisionQuit, message
		default:
			fmt.Fprintln(r.out, "Invalid choice. Use A/E/S/Q.")
		}
	}
}

// ChoosePostings shows one company's open postings and asks which to pursue.
// Input is a comma-separated list of numbers, "a"/empty for all, or "n" for
// none. Order of the chosen stubs is preserved.
func (r *Reviewer) ChoosePostings(companyName string, stubs []types.Stub) []types.Stub {
	if len(stubs) == 1 {
		return stubs
	}

	fmt.Fprintf(r.out, "\n%s%s%s has %d open postings:\n", bold+cyan, companyName, reset, len(stubs))
	for i, stub := range stubs {
		fmt.Fprintf(r.out, "  [%d] %s\n", i+1, stub.Title)
	}

	for {
		fmt.Fprintf(r.out, "%sWhich to pursue? (e.g. 1,3  [a]ll  [n]one)%s > ", bold, reset)
		choice, err := r.readLine()
		if err != nil {
			return nil
		}
		choice = strings.ToLower(strings.TrimSpace(choice))

		switch choice {
		case "a", "all", "":
			return stubs
		case "n", "none":
			return nil
		}

		var chosen []types.Stub
		valid := true
		for _, part := range strings.Split(choice, ",") {
			var idx int
			if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &idx); err != nil || idx < 1 || idx > len(stubs) {
				valid = false
				break
			}
			chosen = append(chosen, stubs[idx-1])
		}
		if valid && len(chosen) > 0 {
			return chosen
		}
		fmt.Fprintln(r.out, "Invalid selection. Use numbers like 1,3 or a/n.")
	}
}

func (r *Reviewer) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *Reviewer) displayHeader(jobNumber, totalJobs int) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "%s%s Job %d/%d%s\n", bold, cyan, jobNumber, totalJobs, reset)
	fmt.Fprintf(r.out, "%s\n", rule)
}

func (r *Reviewer) displayJobContext(job types.Job) {
	company := job.Company

	nameLine := company.Name
	if nameLine == "" {
		nameLine = notFound
	}
	if company.YCBatch != "" {
		nameLine += fmt.Sprintf(" (%s)", company.YCBatch)
	}
	fmt.Fprintf(r.out, "\n%sCompany:%s    %s\n", bold, reset, nameLine)
	fmt.Fprintf(r.out, "%sRole:%s       %s\n", bold, reset, orNotFound(job.Title))
	fmt.Fprintf(r.out, "%sLocation:%s   %s\n", bold, reset, orNotFound(job.Location))
	fmt.Fprintf(r.out, "%sIndustry:%s   %s\n", bold, reset, orNotFound(company.Industry))
	if company.Size != "" {
		fmt.Fprintf(r.out, "%sSize:%s       %s people\n", bold, reset, company.Size)
	} else {
		fmt.Fprintf(r.out, "%sSize:%s       %s\n", bold, reset, notFound)
	}
	fmt.Fprintf(r.out, "%sSalary:%s     %s\n", bold, reset, orNotFound(job.SalaryRange))

	fmt.Fprintf(r.out, "%sFounders:%s   ", bold, reset)
	if len(company.Founders) > 0 {
		var founderStrs []string
		for _, f := range company.Founders {
			if f.LinkedIn != "" {
				founderStrs = append(founderStrs, fmt.Sprintf("%s (%s%s%s)", f.Name, dim, f.LinkedIn, reset))
			} else {
				founderStrs = append(founderStrs, f.Name)
			}
		}
		fmt.Fprintln(r.out, strings.Join(founderStrs, ", "))
	} else {
		fmt.Fprintln(r.out, notFound)
	}

	fmt.Fprintf(r.out, "%sWebsite:%s    %s%s%s\n", bold, reset, dim, orNotFound(company.Website), reset)
	fmt.Fprintf(r.out, "%sJob URL:%s    %s%s%s\n", bold, reset, dim, orNotFound(job.URL), reset)

	r.displaySection("About the company:", job.AboutSummary, company.Description, 500)
	r.displaySection("Role summary:", job.DescriptionSummary, job.Description, 500)
	r.displaySection("Requirements:", "", job.Requirements, 400)
	r.displaySection("Culture/Values:", "", job.CultureNotes, 500)
}

// displaySection prefers the summary, falls back to dimmed raw text.
func (r *Reviewer) displaySection(title, summary, raw string, rawLimit int) {
	fmt.Fprintf(r.out, "\n%s%s%s%s\n", bold, magenta, title, reset)
	switch {
	case summary != "":
		fmt.Fprintf(r.out, "  %s\n", summary)
	case raw != "":
		text := raw
		if len(text) > rawLimit {
			text = text[:rawLimit] + "..."
		}
		fmt.Fprintf(r.out, "  %s%s%s\n", dim, text, reset)
	default:
		fmt.Fprintf(r.out, "  %s\n", notFound)
	}
}

func (r *Reviewer) displayMessage(message string) {
	words := len(strings.Fields(message))
	fmt.Fprintf(r.out, "\n%s%s--- Generated Message (%d words, %d chars) ---%s\n",
		bold, green, words, len(message), reset)
	fmt.Fprintf(r.out, "%s%s%s\n", yellow, message, reset)
	fmt.Fprintf(r.out, "%s%s%s\n", green, strings.Repeat("-", 30), reset)
}

// editMessage opens $EDITOR when set, otherwise falls back to inline entry.
func (r *Reviewer) editMessage(message string) string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		if edited, err := r.editInEditor(message, editor); err == nil {
			return edited
		}
	}
	return r.editInline(message)
}

func (r *Reviewer) editInEditor(message, editor string) (string, error) {
	tmp, err := os.CreateTemp("", "message-*.txt")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(message); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	cmd := exec.Command(editor, tmpPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", err
	}
	result := strings.TrimSpace(string(edited))
	if result == "" {
		return message, nil
	}
	return result, nil
}

func (r *Reviewer) editInline(message string) string {
	fmt.Fprintf(r.out, "\n%sType your new message (or press Enter on :done to keep current):%s\n", dim, reset)
	fmt.Fprintf(r.out, "%s(Type %s:done%s%s on its own line to finish. Blank lines are preserved.)%s\n",
		dim, bold, reset, dim, reset)

	var lines []string
	for {
		line, err := r.readLine()
		if err != nil {
			break
		}
		if strings.ToLower(strings.TrimSpace(line)) == ":done" {
			break
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return message
	}
	return strings.Join(lines, "\n")
}

func orNotFound(s string) string {
	if s == "" {
		return notFound
	}
	return s
}
