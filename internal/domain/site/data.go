package site

import "fmt"

const (
	BusinessName = "Anaheim Hills Contractor"
	Tagline      = "by Easton Designs and Consulting"
	PhoneDisplay = "(657) 888-0026"
	PhoneTel     = "6578880026"
	License      = "CSLB Lic. 1121194"
	ProcessVideo = "https://www.youtube.com/embed/Pfe_cH7hfUY"
)

type Service struct {
	Slug        string
	Title       string
	Description string
	Images      []string
}

type Photo struct {
	Src  string
	Type string
}

type BeforeAfter struct {
	Title  string
	Before string
	After  string
}

var Services = []Service{
	{
		Slug:        "kitchen-remodeling",
		Title:       "Kitchen Remodeling",
		Description: "Complete kitchen renovations including cabinets, countertops, flooring, and appliances.",
		Images:      numbered("/static/img/Kitchen", 10),
	},
	{
		Slug:        "bathroom-remodeling",
		Title:       "Bathroom Remodeling",
		Description: "Full bathroom renovations with modern fixtures, tile work, and plumbing upgrades.",
		Images:      numbered("/static/img/Bathroom", 16),
	},
}

// Gallery is kept in a fixed shuffled order so the page renders the same on every request.
var Gallery = []Photo{
	{"/static/img/Bathroom/7.jpg", "Bathroom"},
	{"/static/img/Kitchen/3.jpg", "Kitchen"},
	{"/static/img/Bathroom/12.jpg", "Bathroom"},
	{"/static/img/Kitchen/8.jpg", "Kitchen"},
	{"/static/img/Bathroom/2.jpg", "Bathroom"},
	{"/static/img/Kitchen/1.jpg", "Kitchen"},
	{"/static/img/Bathroom/15.jpg", "Bathroom"},
	{"/static/img/Kitchen/6.jpg", "Kitchen"},
	{"/static/img/Bathroom/4.jpg", "Bathroom"},
	{"/static/img/Kitchen/9.jpg", "Kitchen"},
	{"/static/img/Bathroom/11.jpg", "Bathroom"},
	{"/static/img/Kitchen/2.jpg", "Kitchen"},
	{"/static/img/Bathroom/8.jpg", "Bathroom"},
	{"/static/img/Bathroom/16.jpg", "Bathroom"},
	{"/static/img/Kitchen/5.jpg", "Kitchen"},
	{"/static/img/Bathroom/1.jpg", "Bathroom"},
	{"/static/img/Kitchen/10.jpg", "Kitchen"},
	{"/static/img/Bathroom/9.jpg", "Bathroom"},
	{"/static/img/Kitchen/4.jpg", "Kitchen"},
	{"/static/img/Bathroom/6.jpg", "Bathroom"},
	{"/static/img/Bathroom/14.jpg", "Bathroom"},
	{"/static/img/Kitchen/7.jpg", "Kitchen"},
	{"/static/img/Bathroom/3.jpg", "Bathroom"},
	{"/static/img/Bathroom/13.jpg", "Bathroom"},
	{"/static/img/Bathroom/5.jpg", "Bathroom"},
	{"/static/img/Bathroom/10.jpg", "Bathroom"},
}

var Transformations = []BeforeAfter{
	{"Project 1", "/static/img/BeforeAfter/1B.jpg", "/static/img/BeforeAfter/1A.jpg"},
	{"Project 2", "/static/img/BeforeAfter/2B.jpg", "/static/img/BeforeAfter/2A.jpg"},
	{"Project 3", "/static/img/BeforeAfter/3B.jpg", "/static/img/BeforeAfter/3A.jpg"},
	{"Project 4", "/static/img/BeforeAfter/4B.jpg", "/static/img/BeforeAfter/4A.jpg"},
}

func numbered(dir string, n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("%s/%d.jpg", dir, i))
	}
	return out
}
