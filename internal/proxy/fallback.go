package proxy

import "strings"

// GenerateFallback produces the locally canned reply rendered when the
// remote provider is unavailable. The buckets mirror the rule-based topics
// so a degraded deployment still answers on-brand.
func GenerateFallback(message string) string {
	input := strings.ToLower(message)

	switch {
	case strings.Contains(input, "who are you") || strings.Contains(input, "introduce"):
		return "I'm a Senior QA Engineer and Automation Specialist. I'm passionate about creating robust " +
			"testing frameworks and ensuring software quality. I specialize in automation testing, CI/CD " +
			"pipelines, and building scalable test solutions."
	case strings.Contains(input, "experience") || strings.Contains(input, "background"):
		return "I have over 5 years of experience in software testing and quality assurance. I've led " +
			"automation testing initiatives, built comprehensive test frameworks, implemented CI/CD " +
			"pipelines, and mentored junior QA engineers."
	case strings.Contains(input, "skill") || strings.Contains(input, "technical"):
		return "My technical skills include Selenium WebDriver, Cypress, Jest, JavaScript, Python, Java, " +
			"TestNG, Jenkins, GitHub Actions, Docker, AWS, Azure, Postman, Appium, API Testing, " +
			"Performance Testing, and Mobile Testing."
	case strings.Contains(input, "automation") || strings.Contains(input, "testing process"):
		return "My automation testing process involves test planning, framework design, implementation, " +
			"CI/CD integration, detailed reporting, and continuous maintenance. I focus on creating " +
			"scalable and maintainable test solutions."
	case strings.Contains(input, "project"):
		return "I've worked on several exciting projects including e-commerce platform testing, mobile app " +
			"testing, API testing frameworks, and performance testing implementations."
	case strings.Contains(input, "contact") || strings.Contains(input, "reach"):
		return "You can reach me through email, LinkedIn, GitHub, or my portfolio website. I'm always open " +
			"to discussing new opportunities and collaborations!"
	default:
		return "That's an interesting question! As a QA Engineer, I'd be happy to discuss this further. " +
			"Could you be more specific about what you'd like to know about my experience or skills?"
	}
}
