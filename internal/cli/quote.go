package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"remodelsite/internal/domain/forms"
	"remodelsite/internal/domain/tracking"
	"remodelsite/internal/leadform"
)

func (a *app) newQuoteCmd() *cobra.Command {
	var (
		contact leadform.Contact
		project string
		budget  string
		finance string
		source  string
		adSrc   string
		token   string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Submit both steps of the quote form",
		Example: `  leadctl quote --name "Jane Doe" --email jane@example.com --phone 6578880026 \
    --project Kitchen --budget "\$50k - \$100k" --financing No`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := leadform.Options{
				Source:       source,
				AdSource:     adSrc,
				CaptchaToken: token,
				Log:          a.log,
			}
			if endpoint := a.v.GetString("conversion-endpoint"); endpoint != "" {
				opts.Tracker = tracking.NewPixel(endpoint, a.timeout())
			}
			form := leadform.New(a.api(), opts)

			ctx := cmd.Context()
			if err := form.SubmitContact(ctx, contact); err != nil {
				return err
			}
			if err := form.SubmitDetails(ctx, leadform.Details{
				Project:   forms.Project(project),
				Budget:    forms.Budget(budget),
				Financing: forms.Financing(finance),
			}); err != nil {
				return fmt.Errorf("lead %s created but details failed: %w", form.SubmissionID(), err)
			}

			fmt.Fprintf(a.out, "Submission ID: %s\n", form.SubmissionID())
			fmt.Fprintf(a.out, "Upload page:   %s%s\n", a.server(), form.UploadPath())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&contact.Name, "name", "", "full name")
	f.StringVar(&contact.Email, "email", "", "email address")
	f.StringVar(&contact.Phone, "phone", "", "phone number")
	f.StringVar(&project, "project", "", fmt.Sprintf("project interest %v", forms.Projects))
	f.StringVar(&budget, "budget", "", fmt.Sprintf("budget bracket %v", forms.Budgets))
	f.StringVar(&finance, "financing", "", fmt.Sprintf("needs financing %v", forms.FinancingOptions))
	f.StringVar(&source, "source", "leadctl", "call to action recorded with the lead")
	f.StringVar(&adSrc, "ad-source", "", "ad source recorded with the lead")
	f.StringVar(&token, "captcha-token", "", "reCAPTCHA token (defaults to the skip token)")
	f.String("conversion-endpoint", "", "conversion pixel endpoint pinged after the contact step")
	_ = a.v.BindPFlag("conversion-endpoint", f.Lookup("conversion-endpoint"))
	for _, name := range []string{"name", "email", "phone", "project", "budget", "financing"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
