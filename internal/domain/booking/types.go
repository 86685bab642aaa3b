package booking

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

func (s Sex) String() string {
	return string(s)
}

func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	default:
		return false
	}
}

type ClientType string

const (
	ClientIndividual ClientType = "individual"
	ClientCompany    ClientType = "company"
)

func (c ClientType) String() string {
	return string(c)
}

func (c ClientType) IsValid() bool {
	switch c {
	case ClientIndividual, ClientCompany:
		return true
	default:
		return false
	}
}

type Kind string

const (
	KindGuestBooking Kind = "guest"
	KindAdminBlock   Kind = "block"
)
