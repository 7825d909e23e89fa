package core

// Reference tag lists shown under each label field. They are advisory:
// reviewers may enter any tag and nothing checks a tag against these lists.
var referenceVocabulary = map[string][]string{
	FieldTopicSystem: {
		"Endocrine System", "Nervous System", "Gastrointestinal System",
		"Cardiovascular System", "Musculoskeletal System & Skin",
		"Respiratory System", "Renal & Urinary System", "Hematologic System",
		"Immune System", "Psychiatry & Behavioral Health", "General Principles",
		"Biochemistry", "Ophthalmic system", "Pediatrics", "Behavioral Health",
		"Biostatistics & Epidemiology", "Reproductive System",
	},
	FieldTopicDiscipline: {
		"Clinical Diagnosis and Management", "Pharmacology", "Pathology",
		"Microbiology and Immunology", "Genetics", "Epidemiology and Biostatistics",
		"Physiology", "Biochemistry", "Anatomy", "Ethics", "Embryology",
		"Cognitive Skills", "Preventive Medicine", "Psychology", "Pediatrics",
		"Nutrition", "Pyschology",
	},
	FieldSubSpeciality: {
		"Pediatrics", "Gastroenterology", "Obstetrics & Gynecology",
		"Endocrinology", "Neurology", "Infectious Diseases", "Hematology",
		"Cardiology", "Pulmonology", "Emergency Medicine", "Psychiatry",
		"Nephrology", "Rheumatology", "Surgery", "Internal Medicine",
		"Dermatology", "Allergy & Immunology", "Urology", "Geriatrics",
		"Education & Management", "Critical Care", "Ophthalmology",
		"Anesthesiology", "Otolaryngology", "Infection Diseases",
		"Orthopedic Surgery", "Pathology", "Sports Medicine",
	},
}

// ReferenceLabels returns the built-in tag list for field, in display order.
func ReferenceLabels(field string) []string {
	ref := referenceVocabulary[field]
	out := make([]string, len(ref))
	copy(out, ref)
	return out
}

// Vocabulary merges the reference list for field with the tags already used
// in the batch.
func Vocabulary(b *Batch, field string) []string {
	set := CollectUniqueLabels(b, field)
	set.Add(referenceVocabulary[field]...)
	return set.Sorted()
}
