package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/jobform"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Inspect the job posting form",
}

var formShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the template document, or the payload it projects to",
	Args:  cobra.NoArgs,
	RunE:  runFormShow,
}

var formFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the editable field paths",
	Args:  cobra.NoArgs,
	RunE:  runFormFields,
}

var (
	showTemplate string
	showFromURL  string
	showRender   bool
	showPayload  bool
)

func init() {
	formShowCmd.Flags().StringVar(&showTemplate, "template", "", "YAML or JSON template (default from config, else built in)")
	formShowCmd.Flags().StringVar(&showFromURL, "from-url", "", "Pre-fill the form from a public job page")
	formShowCmd.Flags().BoolVar(&showRender, "render", false, "Render the --from-url page in headless Chrome first")
	formShowCmd.Flags().BoolVar(&showPayload, "payload", false, "Print the projected submission instead of the document")

	formCmd.AddCommand(formShowCmd, formFieldsCmd)
	rootCmd.AddCommand(formCmd)
}

func runFormShow(cmd *cobra.Command, _ []string) error {
	form, err := openForm(cmd.Context(), showTemplate, showFromURL, showRender)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !showPayload {
		return writeJSON(out, form)
	}

	projector, err := newProjector()
	if err != nil {
		return err
	}
	rec, err := projector.Project(form.Snapshot())
	if err != nil {
		return err
	}
	return writeJSON(out, rec)
}

func runFormFields(cmd *cobra.Command, _ []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "PATH\tKIND")
	for _, f := range jobform.Fields() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", f.Name(), f.Kind())
	}
	return tw.Flush()
}
