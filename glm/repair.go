package glm

const unsignedAttribute = "_Unsigned"

// UnsignedDefectVariables lack the _Unsigned attribute in some older files.
// See pages 14-15 of the GOES-16 GLM full validation product performance guide.
var UnsignedDefectVariables = []string{
	"event_time_offset",
	"group_time_offset",
	"flash_time_offset_of_first_event",
	"flash_time_offset_of_last_event",
	"group_frame_time_offset",
	"flash_frame_time_offset_of_first_event",
	"flash_frame_time_offset_of_last_event",
}

// repairedDataset adds _Unsigned = "true" to defect variables on read
type repairedDataset struct {
	Dataset
	repaired map[string]bool
}

// WithUnsignedRepair wraps ds so that defect variables missing _Unsigned
// read as unsigned. It returns the names of the variables that needed the
// repair, in UnsignedDefectVariables order. The underlying file is not
// modified.
func WithUnsignedRepair(ds Dataset) (Dataset, []string, error) {
	repaired := map[string]bool{}
	names := []string{}
	for _, name := range UnsignedDefectVariables {
		if !HasVariable(ds, name) {
			continue
		}
		v, err := ds.Variable(name)
		if err != nil {
			return nil, nil, err
		}
		if _, ok := v.Attribute(unsignedAttribute); !ok {
			repaired[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ds, names, nil
	}
	return &repairedDataset{Dataset: ds, repaired: repaired}, names, nil
}

func (ds *repairedDataset) Variable(name string) (*Variable, error) {
	v, err := ds.Dataset.Variable(name)
	if err != nil || !ds.repaired[name] {
		return v, err
	}
	v = copyVariable(v)
	v.Attributes[unsignedAttribute] = "true"
	return v, nil
}
