package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane.doe@example.com | (555) 123-4567
linkedin.com/in/janedoe

Summary
Backend engineer with a focus on distributed systems.

Skills
Python, Go, PostgreSQL, Docker, Kubernetes, Communication

Experience
Senior Software Engineer
Acme Corp, 2019 - 2023
- Built payment services in Go and Python
- Led a team of four engineers

Software Engineer
Widget Inc, 3 years
- Maintained PostgreSQL clusters

Education
B.S. Computer Science, State University

Certifications
AWS Certified Solutions Architect
`

func TestExtract_SegmentsAndSkills(t *testing.T) {
	bag := Extract(sampleResume)

	assert.Contains(t, bag.Skills.Technical, "Python")
	assert.Contains(t, bag.Skills.Technical, "Go")
	assert.Contains(t, bag.Skills.Technical, "PostgreSQL")
	assert.Contains(t, bag.Skills.Technical, "Kubernetes")
	assert.Contains(t, bag.Skills.Soft, "Communication")
	assert.NotContains(t, bag.Skills.Technical, "Communication")
}

func TestExtract_Experience(t *testing.T) {
	bag := Extract(sampleResume)

	require.Len(t, bag.Experience, 2)
	assert.Equal(t, "Senior Software Engineer", bag.Experience[0].Title)
	assert.Equal(t, "2019 - 2023", bag.Experience[0].Duration)
	assert.Contains(t, bag.Experience[0].Description, "payment services")
	assert.Equal(t, "Software Engineer", bag.Experience[1].Title)
	assert.Equal(t, "3 years", bag.Experience[1].Duration)
}

func TestExtract_CertificationsAndEducation(t *testing.T) {
	bag := Extract(sampleResume)

	assert.Contains(t, bag.Certifications, "AWS Certified Solutions Architect")
	require.NotEmpty(t, bag.Education)
	assert.Contains(t, bag.Education[0], "B.S. Computer Science")
}

func TestExtract_Contact(t *testing.T) {
	bag := Extract(sampleResume)

	assert.Equal(t, "Jane Doe", bag.Contact.Name)
	assert.Equal(t, "jane.doe@example.com", bag.Contact.Email)
	assert.Equal(t, "(555) 123-4567", bag.Contact.Phone)
	assert.Equal(t, "linkedin.com/in/janedoe", bag.Contact.LinkedIn)
}

func TestExtract_EmptyInput(t *testing.T) {
	bag := Extract("   \n\t  ")

	assert.True(t, bag.IsEmpty())
}

func TestExtract_NoSectionsFallsBackToFullTextScan(t *testing.T) {
	bag := Extract("Worked extensively with Python and Kubernetes for 5 years building APIs.")

	assert.Contains(t, bag.Skills.Technical, "Python")
	assert.Contains(t, bag.Skills.Technical, "Kubernetes")
	require.Len(t, bag.Experience, 1)
	assert.Equal(t, "5 years", bag.Experience[0].Duration)
}

func TestExtract_WordBoundaryGuard(t *testing.T) {
	bag := Extract("Designed scalable pipelines and robust goals.")

	assert.NotContains(t, bag.Skills.Technical, "Scala")
	assert.NotContains(t, bag.Skills.Technical, "Go")
}

func TestParse_EmptyTextFails(t *testing.T) {
	_, err := Parse("doc-1", "  ")

	require.Error(t, err)
	var pf *ParseFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, "doc-1", pf.DocumentID)
}

func TestParse_BuildsDocument(t *testing.T) {
	doc, err := Parse("doc-2", sampleResume)

	require.NoError(t, err)
	assert.Equal(t, "doc-2", doc.ID)
	assert.True(t, doc.HasContent())
}

func TestTotalYears(t *testing.T) {
	bag := Extract(sampleResume)

	// 2019-2023 contributes 4 years, the explicit phrase contributes 3.
	assert.InDelta(t, 7.0, TotalYears(bag.Experience), 0.01)
}

func TestTotalYears_Months(t *testing.T) {
	bag := Extract("Experience\nData Analyst\n6 months\n- Reporting dashboards")

	assert.InDelta(t, 0.5, TotalYears(bag.Experience), 0.01)
}

func TestExtractJobSpec(t *testing.T) {
	spec := ExtractJobSpec("job-1", "Backend Engineer",
		"Requires 5+ years of experience. AWS Certified Solutions Architect preferred.")

	assert.Equal(t, 5.0, spec.MinYears)
	assert.Contains(t, spec.Certifications, "AWS Certified Solutions Architect")
}

func TestSegment_ProseLineIsNotHeading(t *testing.T) {
	sections := Segment("Summary\nHas experience with many teams over the years building software together successfully.\nSkills\nGo")

	assert.NotContains(t, sections, SectionExperience)
	assert.Contains(t, sections[SectionSkills], "Go")
}
