package store

// catalog returns the fixed list of courses. A fresh slice each call, callers can't alter the catalog.
func catalog() []Course {
	return []Course{
		{
			ID:          "1",
			Name:        "Full Stack Web Development",
			Description: "Complete web development bootcamp covering HTML, CSS, JavaScript, React, Node.js, and databases.",
			Duration:    12,
			Price:       20000,
			Image:       "https://images.pexels.com/photos/574071/pexels-photo-574071.jpeg",
			Features: []string{"HTML5 & CSS3", "JavaScript ES6+", "React & Redux", "Node.js & Express", " SQL",
				"Project Portfolio"},
			Level:            LevelBeginner,
			Instructor:       "Srikanth",
			Category:         "Web Development",
			StartDate:        "2025-10-15",
			MaxStudents:      25,
			EnrolledStudents: 18,
		},
		{
			ID:          "2",
			Name:        "Deta Engineer",
			Description: "Comprehensive Python course from basics to advanced topics including data engineering and automation.",
			Duration:    12,
			Price:       30000,
			Image:       "https://images.pexels.com/photos/1181671/pexels-photo-1181671.jpeg",
			Features: []string{"Python Fundamentals", "Data Structures", "Web Scraping", "Automation Scripts", "SQL",
				"Big Data Tools", "Real Projects", "Databricks", "Azure Data Factory"},
			Level:            LevelBeginner,
			Instructor:       "Venkaiah Naidu",
			Category:         "Programming",
			StartDate:        "2025-09-01",
			MaxStudents:      10,
			EnrolledStudents: 7,
		},
		{
			ID:          "3",
			Name:        "Cloud Computing & DevOps",
			Description: "Learn cloud platforms, containerization, CI/CD, and modern DevOps practices for scalable applications.",
			Duration:    12,
			Price:       25000,
			Image:       "https://images.pexels.com/photos/1181298/pexels-photo-1181298.jpeg",
			Features: []string{"AWS/Azure/GCP", "Docker & Kubernetes", "CI/CD Pipelines", "Infrastructure as Code",
				"Monitoring & Logging", "Security Best Practices"},
			Level:            LevelAdvanced,
			Instructor:       "VasuDeva",
			Category:         "Cloud & DevOps",
			StartDate:        "2025-09-15",
			MaxStudents:      10,
			EnrolledStudents: 3,
		},
		{
			ID:   "4",
			Name: "Medical Coding",
			Description: "Ensure accurate healthcare billing, insurance claims, and compliance by translating medical " +
				"diagnoses and procedures into standardized universal codes.",
			Duration: 12,
			Price:    30000,
			Image:    "https://images.pexels.com/photos/590022/pexels-photo-590022.jpeg",
			Features: []string{"Human Anatomy and Physiology", "ICD 10 CM Guidelines", "IPDRG Cross Training",
				"Basic/Advanced Medical coding", "Leading a code in 3M Solventum"},
			Level:            LevelIntermediate,
			Instructor:       "Dr. Ravi Prathap",
			Category:         "Medical Coding",
			StartDate:        "2025-09-15",
			MaxStudents:      15,
			EnrolledStudents: 12,
		},
	}
}
