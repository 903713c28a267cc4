package models

// Static configuration data for the recruitment drive. Departments, teams and
// payment accounts are closed lists, not runtime-mutable entities.

// Departments an applicant may belong to.
var Departments = []string{
	"Cochin University College of Engineering Kuttanad (CUCEK)",
	"DDU Kaushal Kendra (DDUKK)",
	"Department of Applied Economics",
	"Department of Atmospheric Science",
	"Department of Biotechnology",
	"Department of Chemical Oceanography",
	"Department of Chemistry",
	"Department of Computer Applications (DCA)",
	"Department of Computer Science (DCS)",
	"Department of Electronics (DOE)",
	"Department of English and Foreign Languages",
	"Department of Hindi",
	"Department of Instrumentation",
	"Department of Marine Biology, Microbiology & Biochemistry",
	"Department of Mathematics",
	"Department of Physical Oceanography",
	"Department of Physics",
	"Department of Polymer Science and Rubber Technology",
	"Department of Ship Technology",
	"Department of Statistics",
	"International School of Photonics (ISP)",
	"Kunjali Marakkar School of Marine Engineering (KMSME)",
	"School of Engineering (SOE)",
	"School of Environmental Studies",
	"School of Industrial Fisheries",
	"School of Legal Studies (SLS)",
	"School of Management Studies (SMS)",
}

// Teams an applicant can apply to.
var Teams = []string{
	"Ambience",
	"Content",
	"Curation",
	"Event",
	"HR",
	"Media and Production",
	"Outreach",
	"Project",
	"Sponsorship",
	"Tech",
}

// UPIAccount describes one advertisable payment account.
type UPIAccount struct {
	Name      string `json:"name"`
	UPIID     string `json:"upiId"`
	ImagePath string `json:"imagePath"`
}

// UPIAccounts is the configured payment-account list. The first entry is the
// fallback when an admin's selection no longer resolves.
var UPIAccounts = []UPIAccount{
	{Name: "abitha", UPIID: "abithabala20@oksbi", ImagePath: "/payment-upi-qr.jpg"},
	{Name: "kailas", UPIID: "kalias0sachdev@oksbi", ImagePath: "/payment-upi-qr-2.jpg"},
	{Name: "deepak", UPIID: "deepakmk010@oksbi", ImagePath: "/payment-upi-qr-3.jpg"},
	{Name: "asiya", UPIID: "asiyafyroos@oksbi", ImagePath: "/payment-upi-qr-4.jpg"},
}

// IsDepartment reports membership in the department list.
func IsDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// IsTeam reports membership in the team list.
func IsTeam(name string) bool {
	for _, t := range Teams {
		if t == name {
			return true
		}
	}
	return false
}

// UPIAccountByName resolves a payment account; ok is false when the name is
// not configured.
func UPIAccountByName(name string) (UPIAccount, bool) {
	for _, a := range UPIAccounts {
		if a.Name == name {
			return a, true
		}
	}
	return UPIAccount{}, false
}
