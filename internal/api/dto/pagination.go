package dto

// Meta is the pagination block every list endpoint returns.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Envelope is the single response shape for collections: {data, meta}.
// Every list endpoint uses it so clients never have to sniff shapes.
type Envelope struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

func NewMeta(total int64, page, limit int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit != 0 {
			totalPages++
		}
	}
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func NewEnvelope(data interface{}, total int64, page, limit int) Envelope {
	return Envelope{Data: data, Meta: NewMeta(total, page, limit)}
}
