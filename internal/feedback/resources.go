package feedback

import (
	"fmt"
	"strings"

	"github.com/vivekkumar2004/resume-relevance/internal/taxonomy"
)

// categoryResources maps a taxonomy category to a generic learning
// suggestion used when no skill-specific resource is registered.
var categoryResources = map[string]string{
	"programming_languages": "work through the official language tour and build a small project",
	"web_technologies":      "build and deploy a small application with it",
	"databases":             "model and query a realistic dataset with it",
	"cloud_platforms":       "use the provider's free tier to deploy a sample workload",
	"data_science":          "reproduce a published analysis end to end",
	"devops":                "automate the build and deployment of an existing project",
	"mobile_development":    "ship a small app to a test device",
	"security":              "complete a guided lab on the topic",
	"soft_skills":           "collect concrete examples from past work that demonstrate it",
}

// skillResources carries skill-specific suggestions that beat the
// category default.
var skillResources = map[string]string{
	"kubernetes": "run a local cluster with kind or minikube and deploy a multi-service app",
	"docker":     "containerize an existing project and publish the image",
	"terraform":  "codify an existing manual deployment as modules",
	"python":     "automate a recurring task end to end in Python",
	"go":         "build a small CLI or HTTP service in Go",
	"sql":        "practice window functions and joins against a realistic schema",
}

// maxResourceLines caps resource suggestions so feedback stays short.
const maxResourceLines = 3

// resourceLines returns one learning suggestion per missing skill, up
// to the cap, in the order the skills are listed.
func resourceLines(missingSkills []string) []string {
	var out []string
	for _, skill := range missingSkills {
		if len(out) == maxResourceLines {
			break
		}
		out = append(out, fmt.Sprintf("%s: %s.", skill, suggestionFor(skill)))
	}
	return out
}

func suggestionFor(skill string) string {
	key := strings.ToLower(skill)
	if suggestion, ok := skillResources[key]; ok {
		return suggestion
	}
	normalized := taxonomy.NormalizeSkill(skill)
	if suggestion, ok := categoryResources[normalized.Category]; ok {
		return suggestion
	}
	return "study the official documentation and apply it in a hands-on project"
}
