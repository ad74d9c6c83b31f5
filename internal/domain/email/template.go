package email

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/aymerick/raymond"
)

const newLeadTemplate = `
<h2>New Lead</h2>
<p style="font-size: 16px;">Name: <strong>{{name}}</strong></p>
<p style="font-size: 16px;">Email: <strong>{{email}}</strong></p>
<p style="font-size: 16px;">Phone: <strong>{{phone}}</strong></p>
{{#if source}}<p>Clicked: {{source}}</p>{{/if}}
{{#if adSource}}<p>Ad source: {{adSource}}</p>{{/if}}
<p><em>Received at {{receivedAt}}</em></p>
`

const detailsTemplate = `
<h2>Interest and Budget</h2>
<p style="font-size: 16px;">Project Interest: <strong style="background-color: #FFFFC5;">{{project}}</strong></p>
<p style="font-size: 16px;">Budget: <strong style="background-color: #FFFFC5;">{{budget}}</strong></p>
<p style="font-size: 16px;">Financing: <strong style="background-color: #FFFFC5;">{{financing}}</strong></p>
<p><em>Updated at {{updatedAt}}</em></p>
<div style="margin-top: 20px;">
  <a href="{{filesURL}}" style="display: inline-block; background-color: #0EA5E9; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; font-weight: bold; font-size: 16px;">View Files</a>
</div>
`

var (
	newLeadTpl = raymond.MustParse(newLeadTemplate)
	detailsTpl = raymond.MustParse(detailsTemplate)
)

// Templates renders the notification bodies. Timestamps are shown in the sales team's zone.
type Templates struct {
	SiteURL  string
	Location *time.Location
}

func NewTemplates(siteURL string) *Templates {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		loc = time.UTC
	}
	return &Templates{SiteURL: siteURL, Location: loc}
}

type NewLeadData struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Source   string
	AdSource string
}

type DetailsData struct {
	ID        string
	Name      string
	Project   string
	Budget    string
	Financing string
}

func (t *Templates) NewLead(d NewLeadData, at time.Time) (subject, html string, err error) {
	html, err = newLeadTpl.Exec(map[string]any{
		"name":       d.Name,
		"email":      d.Email,
		"phone":      d.Phone,
		"source":     d.Source,
		"adSource":   d.AdSource,
		"receivedAt": t.stamp(at),
	})
	if err != nil {
		return "", "", fmt.Errorf("render new lead email: %w", err)
	}
	return fmt.Sprintf("[PPC] New lead %s - %s", d.Name, d.ID), html, nil
}

func (t *Templates) Details(d DetailsData, at time.Time) (subject, html string, err error) {
	html, err = detailsTpl.Exec(map[string]any{
		"project":   d.Project,
		"budget":    d.Budget,
		"financing": d.Financing,
		"updatedAt": t.stamp(at),
		"filesURL":  t.SiteURL + "/upload/" + d.ID,
	})
	if err != nil {
		return "", "", fmt.Errorf("render details email: %w", err)
	}
	return fmt.Sprintf("[PPC] %s - %s", d.Name, d.ID), html, nil
}

func (t *Templates) stamp(at time.Time) string {
	return at.In(t.Location).Format("1/2/2006, 3:04:05 PM")
}
