package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/jobapi"
	"github.com/jonathan/jobboard/internal/jobform"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/types"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List and post jobs on the job service",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch and print job postings",
	Args:  cobra.NoArgs,
	RunE:  runJobsList,
}

var jobsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Build a posting from a template plus edits and submit it",
	Long: `Build a job posting from a template, apply edits, validate the result and
post it to the job service.

With --from-url the template is first pre-filled from a public job page;
fields the page does not provide keep their template values.

Edits are applied in this order: --set, --add, --item, --remove. Paths are
dotted field names as listed by "jobboard form fields".`,
	Example: `  jobboard jobs post --set job_title="Go Developer" --set salary.min=95000 \
    --add job_description.requirements.skills \
    --item job_description.requirements.skills:5=Go --dry-run`,
	Args: cobra.NoArgs,
	RunE: runJobsPost,
}

var (
	listJSON    bool
	listSearch  string
	listType    string
	listDetails bool

	postTemplate string
	postFromURL  string
	postRender   bool
	postSets     []string
	postAdds     []string
	postItems    []string
	postRemoves  []string
	postDryRun   bool
)

func init() {
	jobsListCmd.Flags().BoolVar(&listJSON, "json", false, "Print the jobs as JSON")
	jobsListCmd.Flags().StringVar(&listSearch, "search", "", "Only jobs whose title, company or location contains this text")
	jobsListCmd.Flags().StringVar(&listType, "type", "", "Only jobs of this type (full-time, part-time, contract, temporary, internship)")
	jobsListCmd.Flags().BoolVar(&listDetails, "details", false, "Print the description of each job")

	jobsPostCmd.Flags().StringVar(&postTemplate, "template", "", "YAML or JSON template to start from (default from config, else built in)")
	jobsPostCmd.Flags().StringVar(&postFromURL, "from-url", "", "Pre-fill the form from a public job page")
	jobsPostCmd.Flags().BoolVar(&postRender, "render", false, "Render the --from-url page in headless Chrome first")
	jobsPostCmd.Flags().StringArrayVar(&postSets, "set", nil, "Set a text or numeric field: path=value")
	jobsPostCmd.Flags().StringArrayVar(&postAdds, "add", nil, "Append an empty row to a list field: path")
	jobsPostCmd.Flags().StringArrayVar(&postItems, "item", nil, "Replace a list row: path:index=value")
	jobsPostCmd.Flags().StringArrayVar(&postRemoves, "remove", nil, "Remove a list row: path:index")
	jobsPostCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "Print the validated payload instead of posting it")

	jobsCmd.AddCommand(jobsListCmd, jobsPostCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	if listType != "" && !validJobType(listType) {
		return fmt.Errorf("unknown job type %q", listType)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	jobs, err := client.ListJobs(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}
	jobs = types.FilterJobs(jobs, types.JobFilter{Search: listSearch, Type: types.JobType(listType)})

	out := cmd.OutOrStdout()
	if listJSON {
		return writeJSON(out, jobs)
	}
	printJobs(out, jobs, listDetails)
	return nil
}

func validJobType(s string) bool {
	for _, t := range types.JobTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

func printJobs(out io.Writer, jobs []types.JobRecord, details bool) {
	if len(jobs) == 0 {
		_, _ = fmt.Fprintln(out, "No jobs found.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tTYPE\tSTATUS")
	for _, job := range jobs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", job.JobTitle, job.Company, job.JobLocation, job.JobType, job.JobStatus)
	}
	_ = tw.Flush()

	if !details {
		return
	}
	for _, job := range jobs {
		_, _ = fmt.Fprintf(out, "\n%s at %s\n%s\n", job.JobTitle, job.Company, job.SummaryText())
	}
}

func runJobsPost(cmd *cobra.Command, _ []string) error {
	edits, err := collectEdits(postSets, postAdds, postItems, postRemoves)
	if err != nil {
		return err
	}

	form, err := openForm(cmd.Context(), postTemplate, postFromURL, postRender)
	if err != nil {
		return err
	}
	form, err = form.ApplyAll(edits...)
	if err != nil {
		return err
	}

	projector, err := newProjector()
	if err != nil {
		return err
	}
	rec, err := projector.Submission(form.Snapshot())
	if settings.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintEdits(edits)
		printer.PrintProblems(err)
		if err == nil {
			printer.PrintJobRecord(&rec)
		}
	}
	if err != nil {
		return fmt.Errorf("posting is not valid: %w", err)
	}

	out := cmd.OutOrStdout()
	if postDryRun {
		return writeJSON(out, rec)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	created, err := client.CreateJob(cmd.Context(), rec)
	var statusErr *jobapi.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("job service rejected the posting (%d): %s", statusErr.StatusCode, statusErr.Detail())
	}
	if err != nil {
		return fmt.Errorf("failed to post job: %w", err)
	}

	logger.Info("job posted", zap.String("id", created.ID), zap.String("job_uuid", rec.JobUUID))
	if created.ID == "" {
		_, _ = fmt.Fprintf(out, "Job posted (job_uuid %s): %s\n", rec.JobUUID, strings.TrimSpace(created.Body))
		return nil
	}
	_, _ = fmt.Fprintf(out, "Job posted: %s (job_uuid %s)\n", created.ID, rec.JobUUID)
	return nil
}

// collectEdits turns the post flags into form edits.
func collectEdits(sets, adds, items, removes []string) ([]jobform.Edit, error) {
	edits := make([]jobform.Edit, 0, len(sets)+len(adds)+len(items)+len(removes))

	for _, arg := range sets {
		path, value, ok := strings.Cut(arg, "=")
		if !ok || path == "" {
			return nil, fmt.Errorf("invalid --set %q: expected path=value", arg)
		}
		edits = append(edits, jobform.Edit{Op: jobform.OpSet, Path: path, Value: value})
	}
	for _, path := range adds {
		if path == "" {
			return nil, fmt.Errorf("invalid --add: path is empty")
		}
		edits = append(edits, jobform.Edit{Op: jobform.OpAddItem, Path: path})
	}
	for _, arg := range items {
		target, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --item %q: expected path:index=value", arg)
		}
		path, index, err := parseRow(target)
		if err != nil {
			return nil, fmt.Errorf("invalid --item %q: %w", arg, err)
		}
		edits = append(edits, jobform.Edit{Op: jobform.OpSetItem, Path: path, Index: index, Value: value})
	}
	for _, arg := range removes {
		path, index, err := parseRow(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid --remove %q: %w", arg, err)
		}
		edits = append(edits, jobform.Edit{Op: jobform.OpRemoveItem, Path: path, Index: index})
	}
	return edits, nil
}

// parseRow splits "path:index".
func parseRow(s string) (string, int, error) {
	path, raw, ok := strings.Cut(s, ":")
	if !ok || path == "" {
		return "", 0, fmt.Errorf("expected path:index")
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return "", 0, fmt.Errorf("index %q is not an integer", raw)
	}
	return path, index, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
