package importer

import (
	"encoding/json"
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/jobboard/internal/jobform"
	"github.com/jonathan/jobboard/internal/types"
)

// Posting is what a job page says about a job. Zero values mean the page
// did not say.
type Posting struct {
	Platform         Platform
	Title            string
	Company          string
	Location         string
	JobType          types.JobType
	Arrangement      types.WorkArrangement
	Summary          string
	Responsibilities string
	Education        string
	ExperienceYears  int
	Skills           []string
	SalaryMin        float64
	SalaryMax        float64
	Currency         string
	Period           types.SalaryPeriod
	// Deadline is RFC 3339, or a datetime-local value for date-only pages.
	Deadline string
}

// Extract reads a posting from page HTML. schema.org JobPosting data is
// preferred; page markup fills what it leaves out.
func Extract(markup, pageURL string) (*Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	p := &Posting{}
	if o := findJobPosting(doc); o != nil {
		p = fromJSONLD(o)
	}
	p.Platform = DetectPlatform(pageURL)
	fillFromMarkup(p, doc)

	if p.Title == "" {
		return nil, ErrNoPosting
	}
	return p, nil
}

// Apply writes the fields the page provided onto f. Fields it left out
// keep their current values. On error f is returned unchanged.
func (p *Posting) Apply(f jobform.Form) (jobform.Form, error) {
	out := f
	var err error
	setText := func(field jobform.TextField, v string) {
		if err == nil && v != "" {
			out, err = out.SetText(field, v)
		}
	}
	setNumber := func(field jobform.NumberField, v float64) {
		if err == nil && v > 0 {
			out, err = out.SetNumber(field, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}

	setText(jobform.JobTitle, p.Title)
	setText(jobform.Company, p.Company)
	setText(jobform.JobLocation, p.Location)
	setText(jobform.JobType, string(p.JobType))
	setText(jobform.WorkArrangement, string(p.Arrangement))
	setText(jobform.RoleSummary, p.Summary)
	setText(jobform.KeyResponsibility, p.Responsibilities)
	setText(jobform.Education, p.Education)
	setNumber(jobform.Experience, float64(p.ExperienceYears))
	setNumber(jobform.SalaryMin, p.SalaryMin)
	setNumber(jobform.SalaryMax, p.SalaryMax)
	setText(jobform.SalaryCurrency, p.Currency)
	setText(jobform.SalaryPeriod, string(p.Period))
	setText(jobform.ApplicationDeadline, p.Deadline)
	if err == nil && len(p.Skills) > 0 {
		out, err = out.SetItems(jobform.Skills, p.Skills...)
	}

	if err != nil {
		return f, err
	}
	return out, nil
}

func findJobPosting(doc *goquery.Document) map[string]any {
	var found map[string]any
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		found = jobPostingIn(data)
		return found == nil
	})
	return found
}

func jobPostingIn(data any) map[string]any {
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			if o := jobPostingIn(item); o != nil {
				return o
			}
		}
	case map[string]any:
		for _, t := range strs(v["@type"]) {
			if t == "JobPosting" {
				return v
			}
		}
		if graph, ok := v["@graph"]; ok {
			return jobPostingIn(graph)
		}
	}
	return nil
}

func fromJSONLD(o map[string]any) *Posting {
	p := &Posting{
		Title:           str(o["title"]),
		Company:         str(o["hiringOrganization"]),
		Location:        locationOf(o["jobLocation"]),
		JobType:         jobTypeOf(o["employmentType"]),
		Education:       educationOf(o["educationRequirements"]),
		ExperienceYears: experienceOf(o["experienceRequirements"]),
		Skills:          strs(o["skills"]),
		Deadline:        deadlineOf(str(o["validThrough"])),
	}

	if strings.EqualFold(str(o["jobLocationType"]), "TELECOMMUTE") {
		p.Arrangement = types.WorkRemote
		if p.Location == "" {
			p.Location = locationOf(o["applicantLocationRequirements"])
		}
	}

	if salary := obj(o["baseSalary"]); salary != nil {
		p.Currency = strings.ToUpper(str(salary["currency"]))
		if value := obj(salary["value"]); value != nil {
			p.SalaryMin = num(value["minValue"])
			p.SalaryMax = num(value["maxValue"])
			if p.SalaryMin == 0 && p.SalaryMax == 0 {
				p.SalaryMin = num(value["value"])
				p.SalaryMax = p.SalaryMin
			}
			p.Period = periodOf(str(value["unitText"]))
		} else {
			p.SalaryMin = num(salary["value"])
			p.SalaryMax = p.SalaryMin
		}
	}

	if desc := str(o["description"]); desc != "" {
		paragraphs, items := fragmentBlocks(desc)
		p.Summary, p.Responsibilities = summarize(paragraphs, items)
	}
	if r := str(o["responsibilities"]); r != "" {
		paragraphs, items := fragmentBlocks(r)
		p.Responsibilities = strings.Join(append(items, paragraphs...), ", ")
	}
	return p
}

// fillFromMarkup completes p from page metadata and the posting body.
// It strips noise elements from doc.
func fillFromMarkup(p *Posting, doc *goquery.Document) {
	if p.Title == "" {
		p.Title = firstNonEmpty(
			meta(doc, "og:title"),
			cleanText(doc.Find("h1").First().Text()),
			cleanText(doc.Find("title").First().Text()),
		)
	}
	if p.Company == "" {
		p.Company = meta(doc, "og:site_name")
	}
	if p.Summary != "" {
		return
	}

	doc.Find(strings.Join(noiseSelectors(p.Platform), ", ")).Remove()
	body := doc.Find("body")
	for _, selector := range contentSelectors(p.Platform) {
		if s := doc.Find(selector); s.Length() > 0 {
			body = s.First()
			break
		}
	}
	paragraphs, items := textBlocks(body)
	summary, responsibilities := summarize(paragraphs, items)
	p.Summary = summary
	if p.Responsibilities == "" {
		p.Responsibilities = responsibilities
	}
}

func fragmentBlocks(fragment string) ([]string, []string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, nil
	}
	return textBlocks(doc.Selection)
}

// textBlocks returns the paragraphs and list items under s. Text without
// either is split into lines.
func textBlocks(s *goquery.Selection) (paragraphs, items []string) {
	s.Find("li").Each(func(_ int, li *goquery.Selection) {
		if t := cleanText(li.Text()); t != "" {
			items = append(items, t)
		}
	})
	s.Find("p").Each(func(_ int, para *goquery.Selection) {
		if t := cleanText(para.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
	})
	if len(paragraphs) > 0 || len(items) > 0 {
		return paragraphs, items
	}
	for _, line := range strings.Split(s.Text(), "\n") {
		if t := cleanText(line); t != "" {
			paragraphs = append(paragraphs, t)
		}
	}
	return paragraphs, nil
}

// summarize picks the role summary and the responsibilities. List items
// become responsibilities; without them the paragraphs after the first do.
func summarize(paragraphs, items []string) (string, string) {
	switch {
	case len(paragraphs) == 0 && len(items) == 0:
		return "", ""
	case len(paragraphs) == 0:
		return items[0], strings.Join(items[1:], ", ")
	case len(items) > 0:
		return paragraphs[0], strings.Join(items, ", ")
	default:
		return paragraphs[0], strings.Join(paragraphs[1:], " ")
	}
}

func meta(doc *goquery.Document, property string) string {
	return cleanText(doc.Find(`meta[property="` + property + `"]`).AttrOr("content", ""))
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// str reads a text value. Objects yield their name.
func str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(html.UnescapeString(t))
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any:
		return str(t["name"])
	}
	return ""
}

// strs reads a list of text values. A string is split on commas.
func strs(v any) []string {
	var raw []string
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			raw = append(raw, str(item))
		}
	case string:
		raw = strings.Split(str(t), ",")
	default:
		raw = []string{str(t)}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func num(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", ""), 64)
		if err != nil {
			return 0
		}
		return f
	case map[string]any:
		return num(t["value"])
	}
	return 0
}

func obj(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

func locationOf(v any) string {
	if list, ok := v.([]any); ok {
		var places []string
		for _, item := range list {
			if s := locationOf(item); s != "" {
				places = append(places, s)
			}
		}
		return strings.Join(places, "; ")
	}

	place := obj(v)
	if place == nil {
		return str(v)
	}
	address := obj(place["address"])
	if address == nil {
		return firstNonEmpty(str(place["address"]), str(place))
	}

	var parts []string
	for _, key := range []string{"addressLocality", "addressRegion"} {
		if s := str(address[key]); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return str(address["addressCountry"])
	}
	return strings.Join(parts, ", ")
}

func jobTypeOf(v any) types.JobType {
	for _, s := range strs(v) {
		switch strings.ToUpper(strings.ReplaceAll(s, "-", "_")) {
		case "FULL_TIME":
			return types.JobTypeFullTime
		case "PART_TIME":
			return types.JobTypePartTime
		case "CONTRACTOR", "CONTRACT":
			return types.JobTypeContract
		case "TEMPORARY":
			return types.JobTypeTemporary
		case "INTERN", "INTERNSHIP":
			return types.JobTypeInternship
		}
	}
	return ""
}

func periodOf(unit string) types.SalaryPeriod {
	switch strings.ToUpper(unit) {
	case "YEAR":
		return types.PeriodAnnual
	case "MONTH":
		return types.PeriodMonthly
	case "HOUR":
		return types.PeriodHourly
	}
	return ""
}

func educationOf(v any) string {
	if o := obj(v); o != nil {
		return firstNonEmpty(str(o["credentialCategory"]), str(o))
	}
	return str(v)
}

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)`)

func experienceOf(v any) int {
	if o := obj(v); o != nil {
		if months := num(o["monthsOfExperience"]); months > 0 {
			return int(math.Ceil(months / 12))
		}
		return 0
	}
	m := yearsPattern.FindStringSubmatch(str(v))
	if m == nil {
		return 0
	}
	years, _ := strconv.Atoi(m[1])
	return years
}

// deadlineOf normalizes validThrough. Date-only values close at the end
// of that day; unparseable values are dropped.
func deadlineOf(s string) string {
	if s == "" {
		return ""
	}
	if at, err := types.ParseInstant(s, time.UTC); err == nil {
		return at.Format(time.RFC3339)
	}
	if day, err := time.Parse(time.DateOnly, s); err == nil {
		return day.Add(23*time.Hour + 59*time.Minute).Format(types.LocalLayout)
	}
	return ""
}
