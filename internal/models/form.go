package models

// Form field keys. They are the keys of the persisted form and of the
// submission payload.
const (
	FormFieldUserName    = "user_name"
	FormFieldAttrCD      = "attr_cd"
	FormFieldDepositorDC = "depositor_dc"
	FormFieldDeptCD      = "dept_cd"
	FormFieldEmpCD       = "emp_cd"
	FormFieldBankCD      = "bank_cd"
	FormFieldBANB        = "ba_nb"
)

// DefaultAttrCD is the ledger attribute code used when the form leaves it empty.
const DefaultAttrCD = "8A"

// FormFieldNames lists the form field keys in display order.
var FormFieldNames = []string{
	FormFieldUserName,
	FormFieldAttrCD,
	FormFieldDepositorDC,
	FormFieldDeptCD,
	FormFieldEmpCD,
	FormFieldBankCD,
	FormFieldBANB,
}

// FormFields holds the top-level fields entered once per ledger.
type FormFields struct {
	UserName    string `json:"user_name" yaml:"user_name" mapstructure:"user_name"`
	AttrCD      string `json:"attr_cd" yaml:"attr_cd" mapstructure:"attr_cd"`
	DepositorDC string `json:"depositor_dc" yaml:"depositor_dc" mapstructure:"depositor_dc"`
	DeptCD      string `json:"dept_cd" yaml:"dept_cd" mapstructure:"dept_cd"`
	EmpCD       string `json:"emp_cd" yaml:"emp_cd" mapstructure:"emp_cd"`
	BankCD      string `json:"bank_cd" yaml:"bank_cd" mapstructure:"bank_cd"`
	BANB        string `json:"ba_nb" yaml:"ba_nb" mapstructure:"ba_nb"`
}

// WithDefaults returns a copy of f where every empty field is taken from defaults.
func (f FormFields) WithDefaults(defaults FormFields) FormFields {
	pick := func(v, d string) string {
		if v != "" {
			return v
		}
		return d
	}
	return FormFields{
		UserName:    pick(f.UserName, defaults.UserName),
		AttrCD:      pick(f.AttrCD, defaults.AttrCD),
		DepositorDC: pick(f.DepositorDC, defaults.DepositorDC),
		DeptCD:      pick(f.DeptCD, defaults.DeptCD),
		EmpCD:       pick(f.EmpCD, defaults.EmpCD),
		BankCD:      pick(f.BankCD, defaults.BankCD),
		BANB:        pick(f.BANB, defaults.BANB),
	}
}

// Get returns the value of the field with the given key.
func (f FormFields) Get(key string) (string, bool) {
	switch key {
	case FormFieldUserName:
		return f.UserName, true
	case FormFieldAttrCD:
		return f.AttrCD, true
	case FormFieldDepositorDC:
		return f.DepositorDC, true
	case FormFieldDeptCD:
		return f.DeptCD, true
	case FormFieldEmpCD:
		return f.EmpCD, true
	case FormFieldBankCD:
		return f.BankCD, true
	case FormFieldBANB:
		return f.BANB, true
	}
	return "", false
}

// Set assigns the field with the given key. It reports false for unknown keys.
func (f *FormFields) Set(key, value string) bool {
	switch key {
	case FormFieldUserName:
		f.UserName = value
	case FormFieldAttrCD:
		f.AttrCD = value
	case FormFieldDepositorDC:
		f.DepositorDC = value
	case FormFieldDeptCD:
		f.DeptCD = value
	case FormFieldEmpCD:
		f.EmpCD = value
	case FormFieldBankCD:
		f.BankCD = value
	case FormFieldBANB:
		f.BANB = value
	default:
		return false
	}
	return true
}
