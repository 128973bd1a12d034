// Package fixtures содержит начальный набор проектов и услуг, которым заполняется хранилище при старте.
package fixtures

import "github.com/magabrotheeeer/studio-portfolio/internal/models"

// Projects возвращает новую копию проектов портфолио.
func Projects() []models.Project {
	res := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		res = append(res, p.Clone())
	}
	return res
}

// Services возвращает новую копию списка услуг.
func Services() []models.Service {
	res := make([]models.Service, 0, len(services))
	for _, s := range services {
		res = append(res, s.Clone())
	}
	return res
}

func link(s string) *string { return &s }

var projects = []models.Project{
	{
		ID:           1,
		Title:        "E-commerce Platform",
		Description:  "A fully responsive e-commerce platform with 3D product visualization and AR try-on features",
		ImageURL:     "https://images.unsplash.com/photo-1508921340878-ba53e1f016ec",
		Technologies: []string{"React", "Three.js", "Node.js", "MongoDB"},
		Category:     "E-commerce",
		Link:         link("https://example.com/ecommerce"),
		GithubLink:   link("https://github.com/example/ecommerce"),
		Featured:     true,
	},
	{
		ID:           2,
		Title:        "Interactive Dashboard",
		Description:  "Data visualization dashboard with real-time updates and interactive 3D charts",
		ImageURL:     "https://images.unsplash.com/photo-1477013743164-ffc3a5e556da",
		Technologies: []string{"Vue.js", "D3.js", "WebGL", "Express"},
		Category:     "Web",
		Link:         link("https://example.com/dashboard"),
		GithubLink:   link("https://github.com/example/dashboard"),
		Featured:     true,
	},
	{
		ID:           3,
		Title:        "Virtual Event Platform",
		Description:  "Interactive virtual event space with customizable avatars and networking features",
		ImageURL:     "https://images.unsplash.com/photo-1534527489986-3e3394ca569c",
		Technologies: []string{"React", "Three.js", "WebRTC", "Firebase"},
		Category:     "3D",
		Link:         link("https://example.com/virtual-event"),
		GithubLink:   link("https://github.com/example/virtual-event"),
	},
	{
		ID:           4,
		Title:        "Mobile Fitness App",
		Description:  "Cross-platform fitness application with 3D exercise demonstrations and progress tracking",
		ImageURL:     "https://images.unsplash.com/photo-1515923256482-1c04580b477c",
		Technologies: []string{"React Native", "Three.js", "Node.js", "GraphQL"},
		Category:     "Mobile",
		Link:         link("https://example.com/fitness-app"),
		GithubLink:   link("https://github.com/example/fitness-app"),
	},
	{
		ID:           5,
		Title:        "Architectural Visualization",
		Description:  "Interactive 3D architectural visualization tool for real estate companies",
		ImageURL:     "https://images.unsplash.com/photo-1642942552831-f4cb4ec9988a",
		Technologies: []string{"Three.js", "React", "WebGL", "GSAP"},
		Category:     "3D",
		Link:         link("https://example.com/architecture"),
		GithubLink:   link("https://github.com/example/architecture"),
		Featured:     true,
	},
	{
		ID:           6,
		Title:        "Educational Platform",
		Description:  "Interactive learning platform with 3D models and simulations for STEM subjects",
		ImageURL:     "https://images.unsplash.com/photo-1454165804606-c3d57bc86b40",
		Technologies: []string{"React", "Three.js", "Express", "PostgreSQL"},
		Category:     "Web",
		Link:         link("https://example.com/education"),
		GithubLink:   link("https://github.com/example/education"),
	},
}

var services = []models.Service{
	{
		ID:          1,
		Title:       "Web Development",
		Description: "Custom websites that stand out with modern design and functionality",
		Icon:        "monitor",
		Features: []string{
			"Responsive design for all devices",
			"SEO optimization",
			"Content management systems",
			"Performance optimization",
			"Accessibility compliance",
		},
	},
	{
		ID:          2,
		Title:       "3D Interactive Experiences",
		Description: "Engaging 3D elements and animations that bring your website to life",
		Icon:        "layers",
		Features: []string{
			"3D product configurators",
			"Interactive data visualizations",
			"WebGL and Three.js implementation",
			"Animated user interfaces",
			"Virtual showrooms and spaces",
		},
	},
	{
		ID:          3,
		Title:       "E-commerce Solutions",
		Description: "Complete e-commerce platforms with advanced features and 3D product visualization",
		Icon:        "shopping-bag",
		Features: []string{
			"Product catalog management",
			"3D product visualization",
			"Secure payment integration",
			"Inventory management",
			"Customer analytics",
		},
	},
	{
		ID:          4,
		Title:       "Mobile Applications",
		Description: "Cross-platform mobile apps with seamless user experiences",
		Icon:        "smartphone",
		Features: []string{
			"Native and hybrid apps",
			"Cross-platform compatibility",
			"Interactive UI/UX design",
			"Integration with device features",
			"Performance optimization",
		},
	},
	{
		ID:          5,
		Title:       "Custom Web Applications",
		Description: "Tailor-made web applications to solve specific business challenges",
		Icon:        "code",
		Features: []string{
			"Custom business logic",
			"Scalable architecture",
			"Cloud deployment",
			"API development and integration",
			"Real-time functionality",
		},
	},
	{
		ID:          6,
		Title:       "Database & Backend Solutions",
		Description: "Robust backend systems and database architecture for your applications",
		Icon:        "database",
		Features: []string{
			"Database design and optimization",
			"API development",
			"Authentication and authorization",
			"Cloud infrastructure setup",
			"Performance monitoring",
		},
	},
}
