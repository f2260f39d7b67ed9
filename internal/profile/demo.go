package profile

// Demo returns the bundled demo profile used when the store holds no saved
// profile yet. Callers must treat the result as read-only.
func Demo() Profile {
	return Profile{
		Name:  "Saurabh",
		Title: "Senior QA Engineer & Automation Specialist",
		Bio: "Passionate about creating robust testing frameworks and ensuring software quality. " +
			"I specialize in automation testing, CI/CD pipelines, and building scalable test solutions.",
		Skills: []string{
			"Selenium WebDriver",
			"Cypress",
			"Jest",
			"JavaScript",
			"Python",
			"Java",
			"TestNG",
			"Jenkins",
			"GitHub Actions",
			"Docker",
			"AWS",
			"Azure",
			"Postman",
			"Appium",
			"API Testing",
			"Performance Testing",
			"Mobile Testing",
		},
		Experience: "I have over 5 years of experience in software testing and quality assurance. " +
			"I've led automation testing initiatives, built comprehensive test frameworks, " +
			"implemented CI/CD pipelines, and mentored junior QA engineers.",
		Projects: "E-commerce platform testing suite with cross-browser Selenium Grid coverage, " +
			"a mobile app testing framework built on Appium, an API testing framework wired into CI/CD, " +
			"and load testing with JMeter and K6 for high-traffic applications.",
		Contact: Contact{
			Email:     "saurabh.person@example.com",
			LinkedIn:  "https://linkedin.com/in/saurabhperson",
			GitHub:    "https://github.com/saurabhperson",
			Portfolio: "https://saurabhperson.dev",
		},
		CommonQuestions: []QA{
			{
				Question: "Who are you?",
				Response: "I'm Saurabh, a Senior QA Engineer and Automation Specialist. I'm passionate about " +
					"creating robust testing frameworks and ensuring software quality. I specialize in " +
					"automation testing, CI/CD pipelines, and building scalable test solutions.",
			},
			{
				Question: "What do you do?",
				Response: "I design and build automated testing solutions. Day to day that means writing test " +
					"frameworks with Selenium and Cypress, wiring them into CI/CD pipelines, and making sure " +
					"every release ships with confidence.",
			},
			{
				Question: "What are your skills?",
				Response: "My technical skills include Selenium WebDriver, Cypress, Jest, JavaScript, Python, " +
					"Java, TestNG, Jenkins, GitHub Actions, Docker, AWS, Azure, Postman, Appium, API Testing, " +
					"Performance Testing, and Mobile Testing.",
			},
			{
				Question: "Tell me about your experience",
				Response: "I have over 5 years of experience in software testing and quality assurance. I've led " +
					"automation testing initiatives, built comprehensive test frameworks, implemented CI/CD " +
					"pipelines, and mentored junior QA engineers.",
			},
			{
				Question: "How do you approach testing?",
				Response: "My process starts with test planning, then framework design, implementation, CI/CD " +
					"integration, detailed reporting, and continuous maintenance. I focus on scalable and " +
					"maintainable test solutions.",
			},
		},
		YoutubeVideos: []Video{
			{ID: 1, VideoID: "qa-auto-101", URL: "https://www.youtube.com/watch?v=qa-auto-101", Title: "Automation Testing Demo"},
			{ID: 2, VideoID: "qa-fw-design", URL: "https://www.youtube.com/watch?v=qa-fw-design", Title: "Designing a Test Framework from Scratch"},
			{ID: 3, VideoID: "qa-cicd-gates", URL: "https://www.youtube.com/watch?v=qa-cicd-gates", Title: "Quality Gates in CI/CD Pipelines"},
		},
		MediumPosts: []Article{
			{ID: 1, Title: "Flaky Tests Are a Design Problem", URL: "https://medium.com/@saurabhperson/flaky-tests", Description: "Why flaky tests point at framework design, not bad luck."},
			{ID: 2, Title: "API Testing Beyond Status Codes", URL: "https://medium.com/@saurabhperson/api-testing", Description: "Contract, schema, and data-shape assertions that actually catch regressions."},
			{ID: 3, Title: "Choosing Between Selenium and Cypress", URL: "https://medium.com/@saurabhperson/selenium-vs-cypress", Description: "A practitioner's comparison grounded in real project trade-offs."},
		},
		Certifications: []Certification{
			{ID: 1, Title: "ISTQB Certified Tester — Foundation Level", Issuer: "ISTQB", URL: "https://www.istqb.org", Year: 2019},
			{ID: 2, Title: "AWS Certified Cloud Practitioner", Issuer: "Amazon Web Services", URL: "https://aws.amazon.com/certification", Year: 2022},
		},
		PersonalWebsite: &Website{
			URL:         "https://saurabhperson.dev",
			Title:       "Saurabh — QA Engineering Portfolio",
			Description: "Projects, talks, and writing on test automation and quality engineering.",
		},
	}
}
