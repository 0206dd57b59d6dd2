package costsheet

// DocumentTitle is the title printed on a generated statement document.
const DocumentTitle = "실 행 내 역 서"

// Disclaimer is printed under the item table of a generated document.
const Disclaimer = "※ 본 실행내역서는 추정치를 기반으로 작성된 자료로, 실제 시공 내용과 차이가 발생할 수 있습니다."

// ProjectInfo is the header block handed to document generators, every value
// already formatted for print.
type ProjectInfo struct {
	Name             string `json:"name"`
	Date             string `json:"date"`
	ContractAmount   string `json:"contractAmount"`
	RevenueAmount    string `json:"revenueAmount"`
	ContractCapacity string `json:"contractCapacity"`
	Total            string `json:"total"`
	Rate             string `json:"rate"`
	UnitPrice        string `json:"unitPrice"`
}

// Document is the contract with document generators: the rows to print and
// the project information computed from them.
type Document struct {
	Title      string      `json:"title"`
	Rows       []LineItem  `json:"rows"`
	Info       ProjectInfo `json:"projectInfo"`
	Disclaimer string      `json:"disclaimer"`
}

// NewDocument builds the document of a state.
func NewDocument(s State) Document {
	m := s.Metrics()
	return Document{
		Title: DocumentTitle,
		Rows:  s.Ledger.Items(),
		Info: ProjectInfo{
			Name:             s.Meta.ProjectName,
			Date:             s.Meta.Date,
			ContractAmount:   s.Meta.Text(MetaContractAmount),
			RevenueAmount:    m.Revenue.String(),
			ContractCapacity: FormatNumber(s.Meta.ContractCapacity),
			Total:            FormatNumber(m.Total),
			Rate:             m.ExecutionRate.String(),
			UnitPrice:        m.UnitPrice.String(),
		},
		Disclaimer: Disclaimer,
	}
}
