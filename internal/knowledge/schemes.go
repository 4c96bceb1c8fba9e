package knowledge

import "fmt"

// Scheme is a resolved government scheme entry.
type Scheme struct {
	Name       string
	Benefit    string
	Eligibility string
}

// ResolveScheme resolves a scheme name to its canonical detail, formatting
// the MSP amount into the benefit text for MSP-procurement schemes. Unknown
// scheme names fall back to a generic entry rather than being dropped, the
// source's own behavior.
func ResolveScheme(name string, mspForCrop *float64) Scheme {
	switch name {
	case "PM-KISAN":
		return Scheme{Name: "PM-KISAN", Benefit: "₹6000/year direct transfer", Eligibility: "All farmers"}
	case "PMFBY":
		return Scheme{Name: "Pradhan Mantri Fasal Bima Yojana", Benefit: "Crop insurance at 1.5-2% premium", Eligibility: "All farmers"}
	case "Paddy Procurement at MSP":
		return Scheme{Name: "Paddy MSP Procurement", Benefit: mspBenefit(mspForCrop), Eligibility: "Registered farmers"}
	case "Wheat Procurement":
		return Scheme{Name: "Wheat MSP Procurement", Benefit: mspBenefit(mspForCrop), Eligibility: "Registered farmers"}
	case "e-NAM":
		return Scheme{Name: "e-NAM (National Agriculture Market)", Benefit: "Online trading, better prices", Eligibility: "All farmers"}
	case "NAFED Procurement":
		return Scheme{Name: "NAFED Procurement", Benefit: fmt.Sprintf("Procurement at %s", mspBenefit(mspForCrop)), Eligibility: "Registered farmers"}
	case "Pulses Procurement":
		return Scheme{Name: "Pulses Procurement Scheme", Benefit: "Assured procurement at MSP", Eligibility: "Registered farmers"}
	case "Cotton Corporation of India Procurement":
		return Scheme{Name: "CCI Cotton Procurement", Benefit: mspBenefit(mspForCrop), Eligibility: "Cotton farmers"}
	case "Sugar Development Fund":
		return Scheme{Name: "Sugar Development Fund", Benefit: "Loans for cane development", Eligibility: "Sugarcane farmers"}
	case "Cold Storage Subsidy":
		return Scheme{Name: "Cold Storage Subsidy Scheme", Benefit: "35-50% subsidy on cold storage", Eligibility: "FPOs, farmers"}
	default:
		return Scheme{Name: name, Benefit: "Various benefits", Eligibility: "Check with local office"}
	}
}

func mspBenefit(msp *float64) string {
	if msp == nil {
		return "Guaranteed MSP of ₹N/A/quintal"
	}
	return fmt.Sprintf("Guaranteed MSP of ₹%.0f/quintal", *msp)
}
