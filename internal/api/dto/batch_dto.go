package dto

// BatchRequest asks for one action over many ids. IDs are strings so the same
// shape serves uuid-keyed users and integer-keyed content.
type BatchRequest struct {
	Action string   `json:"action" binding:"required"`
	IDs    []string `json:"ids" binding:"required,min=1,max=200"`
}

// BatchItemResult reports one item's outcome; the batch itself is not atomic.
type BatchItemResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BatchResponse summarizes a batch run.
type BatchResponse struct {
	Action    string            `json:"action"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
}

func NewBatchResponse(action string, results []BatchItemResult) *BatchResponse {
	resp := &BatchResponse{Action: action, Results: results}
	for _, r := range results {
		if r.OK {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}
