package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/schemas"
)

var validateSchema string

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Check saved job payloads against the job record schema",
	Long: `Check JSON payloads, such as the output of "form show --payload", against the
job record schema before they are sent to the job service.

Use --schema to check against a different JSON Schema file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "JSON Schema file (default: built-in job record schema)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	validator, err := payloadValidator(validateSchema)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		err := validator.ValidateFile(path)
		var verr *schemas.ValidationError
		switch {
		case err == nil:
			_, _ = fmt.Fprintf(out, "%s: valid\n", path)
		case errors.As(err, &verr):
			failed++
			_, _ = fmt.Fprintf(out, "%s: %d problems\n", path, len(verr.Errors))
			for _, fe := range verr.Errors {
				_, _ = fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
			}
			if settings.Verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintProblems(verr)
			}
		default:
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d payloads are not valid", failed, len(args))
	}
	return nil
}

func payloadValidator(schemaPath string) (*schemas.Validator, error) {
	if schemaPath == "" {
		return schemas.JobRecordValidator()
	}
	return schemas.LoadValidator(schemaPath)
}
