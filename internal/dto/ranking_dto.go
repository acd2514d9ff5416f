package dto

type RankingRequest struct {
	SiteId  string `json:"-"`
	SiteQid string `json:"-"`
}

type RankingDoc struct {
	DocId     string `json:"docid"`
	SiteDocId string `json:"site_docid,omitempty"`
}

type RankingResponse struct {
	Sid     string       `json:"sid"`
	SiteQid string       `json:"site_qid"`
	Doclist []RankingDoc `json:"doclist"`
}
