package main

const (
	OwnerName  = "Cedrix James Estoquia"
	OwnerTitle = "full stack developer"
	GithubUser = "github.com/Cedrix49"

	HeroTagline = `with a passion for creating user-friendly and efficient web applications.`

	// AboutMe is rendered as markdown.
	AboutMe = `I'm an **aspiring full stack developer** passionate about creating interactive and
responsive web applications.

With experience in both front-end and back-end technologies, I enjoy bringing ideas to life
through clean, efficient code and thoughtful design.`
)

type NavLink struct {
	Title string
	Path  string
}

type Skill struct {
	Name string
	Icon string
}

type Experience struct {
	Period      string
	Role        string
	Description string
}

type Project struct {
	ID           int
	Year         int
	Title        string
	Description  string
	Technologies []string
	Image        string
	DemoCode     string
}

// ProfileLink is an outbound link served through /go/:code.
type ProfileLink struct {
	Code  string
	Label string
	URL   string
}

var (
	NavLinks = []NavLink{
		{Title: "Home", Path: "#"},
		{Title: "About", Path: "#about"},
		{Title: "Projects", Path: "#projects"},
	}

	Skills = []Skill{
		{Name: "React", Icon: "/images/icons8-react.svg"},
		{Name: "JavaScript", Icon: "/images/icons8-js.svg"},
		{Name: "Tailwind CSS", Icon: "/images/icons8-tailwind.svg"},
		{Name: "HTML/CSS", Icon: "/images/icons8-html.svg"},
		{Name: "Bootstrap", Icon: "/images/icons8-bootstrap.svg"},
		{Name: "Next.js", Icon: "/images/next.svg"},
		{Name: "PHP", Icon: "/images/icons8-php.svg"},
		{Name: "MySQL", Icon: "/images/icons8-sql.svg"},
		{Name: "Github", Icon: "/images/GitHub.svg"},
		{Name: "Figma", Icon: "/images/Figma.svg"},
		{Name: "Appwrite", Icon: "/images/Appwrite.svg"},
	}

	// StackIcons scroll across the skills carousel.
	StackIcons = []string{
		"/images/icons8-html.svg",
		"/images/icons8-css3.svg",
		"/images/icons8-js.svg",
		"/images/icons8-react.svg",
		"/images/icons8-php.svg",
		"/images/icons8-sql.svg",
		"/images/icons8-tailwind.svg",
		"/images/icons8-next.svg",
	}

	Experiences = []Experience{
		{
			Period:      "Present",
			Role:        "Freelancer",
			Description: "Developed responsive websites and web applications using modern frameworks and technologies.",
		},
		{
			Period:      "January 2025 - April 2025",
			Role:        "Full Stack Developer Intern",
			Description: "Assisted in developing the company's procurement and inventory management system as well as designing the company's website.",
		},
	}

	Projects = []Project{
		{
			ID:           1,
			Year:         2025,
			Title:        "Movie Web Application",
			Description:  "A movie web application that allows users to search for movies and view details about them.",
			Technologies: []string{"React", "Appwrite", "Tailwind CSS"},
			Image:        "/images/proj1.jpeg",
			DemoCode:     "movies",
		},
		{
			ID:           2,
			Year:         2025,
			Title:        "Sushiro- Sushi Restaurant Website",
			Description:  "A front-end website for a sushi restaurant",
			Technologies: []string{"HTML", "CSS", "Bootstrap", "JavaScript"},
			Image:        "/images/proj2.jpeg",
			DemoCode:     "sushiro",
		},
		{
			ID:           3,
			Year:         2025,
			Title:        "New CBIS design",
			Description:  "A new web design for the CBIS website",
			Technologies: []string{"HTML", "CSS", "Bootstrap", "JavaScript"},
			Image:        "/images/proj3.jpeg",
			DemoCode:     "cbis",
		},
	}

	// ProfileLinks are seeded into the links table at startup.
	ProfileLinks = []ProfileLink{
		{Code: "github", Label: "GitHub", URL: "https://github.com/cedrix49"},
		{Code: "linkedin", Label: "LinkedIn", URL: "https://www.linkedin.com/in/cedrix-james-estoquia/"},
		{Code: "facebook", Label: "Facebook", URL: "https://web.facebook.com/H1raethhhh/"},
		{Code: "movies", Label: "Movie Web Application demo", URL: "https://cje-movies.vercel.app/"},
		{Code: "sushiro", Label: "Sushiro demo", URL: "https://sushi-1xnq.vercel.app/"},
		{Code: "cbis", Label: "CBIS demo", URL: "https://cedrix49.github.io/cbis"},
	}
)

func findProject(id int) (Project, bool) {
	for _, p := range Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
