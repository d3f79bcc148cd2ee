package enum

import "encoding/json"

// StockStatus classifies an ingredient's stock level for reporting
type StockStatus int

const (
	StockGood     StockStatus = 0
	StockLow      StockStatus = 1
	StockReorder  StockStatus = 2
	StockCritical StockStatus = 3
)

func (s StockStatus) String() string {
	names := [...]string{"GOOD", "LOW", "REORDER", "CRITICAL"}
	if int(s) < 0 || int(s) >= len(names) {
		return "GOOD"
	}
	return names[s]
}

func (s StockStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StockStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = StockStatus(i)
		return nil
	}
	switch str {
	case "LOW":
		*s = StockLow
	case "REORDER":
		*s = StockReorder
	case "CRITICAL":
		*s = StockCritical
	default:
		*s = StockGood
	}
	return nil
}
