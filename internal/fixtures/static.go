package fixtures

import (
	"context"
	"time"

	"github.com/ehr/visitreview/internal/domain/artifact"
	"github.com/ehr/visitreview/internal/domain/chart"
)

// StaticSource serves the built-in demo data.
type StaticSource struct{}

func (StaticSource) Load(context.Context) (*Set, error) {
	return Static(), nil
}

// Static returns a fresh copy of the built-in demo data set.
func Static() *Set {
	return &Set{
		PatientList:         staticPatients(),
		VisitList:           staticVisits(),
		InsuranceNoteList:   []artifact.InsuranceNote{staticInsuranceNote()},
		OrderList:           staticOrders(),
		PatientArtifactList: []artifact.PatientArtifact{staticPatientArtifact()},
	}
}

func at(layout string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", layout)
	if err != nil {
		panic(err)
	}
	return t
}

func staticPatients() []chart.Patient {
	return []chart.Patient{
		{
			ID:        "p1",
			FirstName: "Peter",
			LastName:  "Brown",
			DOB:       "1970-03-15",
			MRN:       "123456789",
			Gender:    chart.GenderMale,
			Insurance: chart.Insurance{Provider: "Blue Cross Blue Shield", PlanID: "PPO-12345", GroupNumber: "GRP-98765"},
			Allergies: []string{},
			Medications: []chart.Medication{
				{Name: "Ibuprofen", Dose: "400mg", Frequency: "PRN", StartDate: "2023-08-15"},
			},
			Contact: chart.Contact{Phone: "(555) 123-4567", Email: "peter.brown@email.com", Address: "123 Main St, New York, NY 10001"},
		},
		{
			ID:        "p2",
			FirstName: "James",
			LastName:  "Wilson",
			DOB:       "1958-07-22",
			MRN:       "987654321",
			Gender:    chart.GenderMale,
			Insurance: chart.Insurance{Provider: "Aetna", PlanID: "HMO-54321", GroupNumber: "GRP-11111"},
			Allergies: []string{"Aspirin"},
			Medications: []chart.Medication{
				{Name: "Atorvastatin", Dose: "20mg", Frequency: "QHS", StartDate: "2023-09-10"},
				{Name: "Amlodipine", Dose: "5mg", Frequency: "QD", StartDate: "2024-02-20"},
			},
			Contact: chart.Contact{Phone: "(555) 987-6543", Email: "james.wilson@email.com", Address: "456 Oak Ave, Brooklyn, NY 11201"},
		},
		{
			ID:        "p3",
			FirstName: "Sarah",
			LastName:  "Chen",
			DOB:       "1975-11-08",
			MRN:       "456789123",
			Gender:    chart.GenderFemale,
			Insurance: chart.Insurance{Provider: "United Healthcare", PlanID: "EPO-67890", GroupNumber: "GRP-22222"},
			Allergies: []string{},
			Medications: []chart.Medication{
				{Name: "Levothyroxine", Dose: "50mcg", Frequency: "QD", StartDate: "2022-04-15"},
			},
			Contact: chart.Contact{Phone: "(555) 456-7890", Email: "sarah.chen@email.com", Address: "789 Pine Rd, Manhattan, NY 10022"},
		},
	}
}

func staticVisits() []chart.Visit {
	return []chart.Visit{
		{
			ID:             "v1",
			PatientID:      "p1",
			Date:           at("2024-01-15T10:00:00"),
			Provider:       "Dr. Sarah Miller",
			ChiefComplaint: "Worsening left knee pain",
			Status:         chart.VisitCompleted,
			Transcript:     v1Transcript,
		},
		{
			ID:             "v2",
			PatientID:      "p2",
			Date:           at("2026-01-10T10:00:00"),
			Provider:       "Dr. Smith",
			ChiefComplaint: "Annual physical",
			Status:         chart.VisitInProgress,
		},
		{
			ID:             "v3",
			PatientID:      "p3",
			Date:           at("2026-01-10T11:00:00"),
			Provider:       "Dr. Smith",
			ChiefComplaint: "Follow-up thyroid",
			Status:         chart.VisitCheckedIn,
		},
	}
}

func staticInsuranceNote() artifact.InsuranceNote {
	return artifact.InsuranceNote{
		VisitID: "v1",
		Layers: artifact.InsuranceLayers{
			Billing: artifact.BillingSummary{
				ChiefComplaint: "Worsening left knee pain, especially in afternoons",
				ICDCodes: []artifact.ICDCode{
					{Code: "M17.11", Description: "Primary osteoarthritis, left knee", IsPrimary: true},
					{Code: "M25.562", Description: "Pain in left knee", IsPrimary: false},
				},
				EMLevel:  "99214 (Established Patient, Level 4)",
				FollowUp: "",
			},
			MedicalNecessity: artifact.MedicalNecessity{
				Justification: "54yo M with established history of osteoarthritis of the left knee presenting with worsening left knee pain over several weeks. Pain localized to medial aspect, worse in afternoons after prolonged standing at work. Current ibuprofen 400mg PRN no longer providing adequate relief. Recent X-rays demonstrate progression of medial compartment narrowing consistent with advancing osteoarthritis.",
				ServicesRendered: []string{
					"Comprehensive history and physical examination",
					"Review of recent X-ray imaging",
					"Medical decision making: moderate complexity",
				},
				OrdersWithJustification: []artifact.OrderJustification{
					{CPTCode: "97110", Description: "Physical Therapy - Therapeutic exercises", Rationale: "Knee strengthening exercises and functional improvement for osteoarthritis management"},
					{CPTCode: "73721", Description: "MRI left knee without contrast", Rationale: "Conditional order if no improvement after 6 weeks of conservative treatment - detailed evaluation of cartilage and soft tissue structures"},
				},
			},
			FullDocumentation: v1InsuranceDocumentation,
		},
	}
}

func staticOrders() []artifact.ClinicalOrder {
	return []artifact.ClinicalOrder{
		{
			ID:        "o1",
			VisitID:   "v1",
			Type:      artifact.OrderTypePrescription,
			Status:    artifact.OrderStatusSent,
			CreatedAt: at("2024-01-15T10:30:00"),
			Details: &artifact.PrescriptionDetails{
				Medication:   "Naproxen",
				Dose:         "500mg",
				Frequency:    "BID",
				Quantity:     60,
				Refills:      2,
				Instructions: "Take with food for anti-inflammatory effect and pain control",
				Pharmacy:     &artifact.Facility{Name: "CVS Pharmacy", Address: "350 Fifth Avenue, New York, NY 10118", Phone: "(212) 564-8970"},
			},
		},
		{
			ID:        "o4",
			VisitID:   "v1",
			Type:      artifact.OrderTypeLab,
			Status:    artifact.OrderStatusOrdered,
			CreatedAt: at("2024-01-15T10:32:00"),
			Details: &artifact.LabDetails{
				Tests:    []string{"CBC with Differential", "CMP (Comprehensive Metabolic Panel)", "ESR (Sed Rate)", "CRP (C-Reactive Protein)"},
				Urgency:  artifact.LabRoutine,
				Notes:    "Baseline inflammatory markers and metabolic panel before starting NSAID therapy",
				Facility: &artifact.Facility{Name: "Quest Diagnostics", Address: "1440 Broadway, New York, NY 10018", Phone: "(212) 730-2270"},
			},
		},
		{
			ID:        "o3",
			VisitID:   "v1",
			Type:      artifact.OrderTypeReferral,
			Status:    artifact.OrderStatusSent,
			CreatedAt: at("2024-01-15T10:40:00"),
			Details: &artifact.ReferralDetails{
				Specialty: "Physical Therapy",
				Provider:  "Excel Physical Therapy",
				Urgency:   artifact.ReferralRoutine,
				Reason:    "Knee strengthening exercises and functional improvement for left knee osteoarthritis",
				Notes:     "Focus on quadriceps strengthening, ROM exercises, and gait training",
				Facility:  &artifact.Facility{Name: "Excel Physical Therapy", Address: "275 Madison Avenue, Suite 1000, New York, NY 10016", Phone: "(212) 867-8600"},
			},
		},
		{
			ID:        "o2",
			VisitID:   "v1",
			Type:      artifact.OrderTypeImaging,
			Status:    artifact.OrderStatusOrdered,
			CreatedAt: at("2024-01-15T10:35:00"),
			Details: &artifact.ImagingDetails{
				Study:      "MRI Left Knee without Contrast",
				BodyPart:   "Left Knee",
				Indication: "Conditional: If no improvement after 6 weeks of conservative treatment - detailed evaluation of cartilage and soft tissue structures",
				Protocol:   "Standard knee protocol",
				Facility:   &artifact.Facility{Name: "Lenox Hill Radiology", Address: "61 East 77th Street, New York, NY 10075", Phone: "(212) 772-3111"},
			},
		},
	}
}

func staticPatientArtifact() artifact.PatientArtifact {
	return artifact.PatientArtifact{
		VisitID: "v1",
		Preferences: artifact.Preferences{
			Format:        artifact.FormatPDF,
			LiteracyLevel: artifact.LiteracyGrade8,
			Language:      artifact.LanguageEnglish,
		},
		Content: artifact.PatientContent{
			Greeting: "Hi Peter! Here's what we talked about today:",
			Summary:  "You came in because your left knee pain has been getting worse, especially in the afternoons after standing at work. We looked at your recent X-rays and they show that the arthritis in your knee has progressed a bit. The ibuprofen you've been taking isn't working as well anymore, so we're going to try a stronger anti-inflammatory medicine and get you started with physical therapy.",
			Medications: []string{
				"STOP taking Ibuprofen 400mg",
				"NEW: Start Naproxen 500mg - take one pill twice a day with food",
			},
			NextSteps: []string{
				"Start physical therapy at Excel Physical Therapy - 275 Madison Avenue, Suite 1000, New York, NY 10016 - (212) 867-8600",
				"Pick up your prescription at CVS Pharmacy - 350 Fifth Avenue, New York, NY 10118 - (212) 564-8970",
				"Get blood work done at Quest Diagnostics - 1440 Broadway, New York, NY 10018 - (212) 730-2270",
				"Take Naproxen regularly with meals to reduce inflammation",
				"Try to avoid standing for long periods when possible - take breaks to sit and rest your knee",
				"See me again in 6 weeks to check how you're doing",
			},
			WarningSignsTitle: "Call us right away if:",
			WarningSigns: []string{
				"Your knee becomes very swollen, red, or warm to touch",
				"You develop a fever along with knee pain",
			},
		},
	}
}

const v1Transcript = `Peter Brown is a 54-year-old male with established history of osteoarthritis of the left knee presenting with worsening left knee pain over the past several weeks. Pain is localized to the medial aspect of the left knee, worse in the afternoons, especially after prolonged standing at work. Patient reports current ibuprofen 400mg as needed is no longer providing adequate pain relief. Denies trauma, locking, catching, or giving way of the knee. Denies fever, chills, or systemic symptoms.

Review of recent X-rays from last month demonstrates progression of medial compartment narrowing compared to prior imaging, consistent with advancing osteoarthritis.

Vitals: BP 138/88, HR 72, RR 16, SpO2 99% on RA, Temp 98.6°F
Physical exam: General - well appearing, no acute distress. Left knee examination reveals mild medial joint line tenderness. Full range of motion. No effusion. Negative McMurray's test. Negative Lachman's test. Gait: Mild antalgic pattern favoring left leg.

Assessment: Osteoarthritis of left knee, primary - progressive symptoms requiring escalation of conservative management.

Plan:
1. Initiate Naproxen 500mg PO twice daily with food
2. Referral to Physical Therapy for knee strengthening exercises
3. Follow-up in 6 weeks to assess response
4. If no improvement after 6 weeks, proceed with MRI left knee
5. Educated patient on activity modification and weight management`

const v1InsuranceDocumentation = `INSURANCE MEDICAL NOTE

Patient: Peter Brown
DOB: 03/15/1970
Date of Service: 01/15/2024
Location: Outpatient Clinic
Provider: Sarah Miller, MD
Visit Type: Established Patient, Level 4

REASON FOR VISIT
Worsening left knee pain, especially in afternoons. Current ibuprofen not providing adequate relief.

HISTORY OF PRESENT ILLNESS
Peter Brown is a 54-year-old male with established history of osteoarthritis of the left knee presenting with worsening left knee pain over the past several weeks. Pain is localized to the medial aspect of the left knee, worse in the afternoons, especially after prolonged standing at work. Patient reports current ibuprofen 400mg as needed is no longer providing adequate pain relief. Denies trauma, locking, catching, or giving way of the knee. Denies fever, chills, or systemic symptoms.

Review of recent X-rays from last month demonstrates progression of medial compartment narrowing compared to prior imaging, consistent with advancing osteoarthritis.

REVIEW OF SYSTEMS
• Constitutional: Negative for fever, chills, or weight loss
• Musculoskeletal: Positive for left knee pain, worse with activity; negative for joint swelling, redness, or warmth
• Neurologic: Negative for numbness, tingling, or weakness
• All other systems: Reviewed and negative

PHYSICAL EXAMINATION
Vital Signs:
• BP: 138/88 mmHg
• HR: 72 bpm
• Temp: 98.6°F
• RR: 16
• SpO₂: 99% on room air

General: Well appearing, no acute distress
Musculoskeletal: Left knee examination reveals mild medial joint line tenderness. Full range of motion. No effusion. Negative McMurray's test. Negative Lachman's test.
Gait: Mild antalgic pattern favoring left leg.
Cardiovascular: Regular rate and rhythm
Respiratory: Clear to auscultation bilaterally
Neurologic: Alert and oriented ×3

LABORATORIES AND IMAGING
• X-ray left knee (recent): Progression of medial compartment narrowing, consistent with osteoarthritis
• MRI left knee: Ordered conditionally if no improvement after 6 weeks of conservative treatment
• Laboratory studies: Not indicated at this time

ASSESSMENT AND PLAN

1. Osteoarthritis of left knee, primary (M17.11)
   • Initiate Naproxen 500mg PO twice daily with food for anti-inflammatory effect and pain control
   • Referral to Physical Therapy for knee strengthening exercises and functional improvement
   • Follow-up in 6 weeks to assess response to conservative management
   • If no improvement after 6 weeks of PT and NSAID therapy, proceed with MRI left knee (CPT: 73721) for detailed evaluation of cartilage and soft tissue structures
   • Educated patient on activity modification and weight management

2. Left knee pain (M25.562)
   • Symptoms attributed to progressive osteoarthritis
   • Expected to improve with conservative management including NSAID therapy and physical therapy`
