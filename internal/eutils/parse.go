// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eutils

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// E-utilities JSON responses are decoded field by field: a body that is not
// a JSON object is a FormatError, while missing or mistyped fields inside it
// degrade to defaults.

// parseSearch extracts esearchresult.idlist.
func parseSearch(body []byte, log zerolog.Logger) ([]string, error) {
	top, err := decodeObject(body)
	if err != nil {
		return nil, &types.FormatError{Op: "esearch", Err: err}
	}

	raw, ok := top["esearchresult"]
	if !ok {
		log.Warn().Msg("esearch response has no esearchresult; treating as no results")
		return []string{}, nil
	}

	var res struct {
		IDList json.RawMessage `json:"idlist"`
		Error  string          `json:"ERROR"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		log.Warn().Err(err).Msg("esearchresult is malformed; treating as no results")
		return []string{}, nil
	}
	if res.Error != "" {
		log.Warn().Str("ncbi_error", res.Error).Msg("esearch reported an error")
	}

	var ids []string
	if len(res.IDList) > 0 {
		if err := json.Unmarshal(res.IDList, &ids); err != nil {
			log.Warn().Err(err).Msg("idlist is malformed; treating as no results")
			return []string{}, nil
		}
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// parseSummary maps the esummary result object onto RawPapers in the order
// of ids, skipping IDs that are absent or not objects.
func parseSummary(body []byte, ids []string, log zerolog.Logger) ([]types.RawPaper, error) {
	top, err := decodeObject(body)
	if err != nil {
		return nil, &types.FormatError{Op: "esummary", Err: err}
	}

	papers := make([]types.RawPaper, 0, len(ids))

	raw, ok := top["result"]
	if !ok {
		log.Warn().Msg("esummary response has no result; treating as no records")
		return papers, nil
	}

	// result also carries a "uids" array, so values are decoded per ID.
	var result map[string]json.RawMessage
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Warn().Err(err).Msg("esummary result is malformed; treating as no records")
		return papers, nil
	}

	for _, id := range ids {
		rec, ok := result[id]
		if !ok {
			log.Debug().Str("id", id).Msg("id missing from esummary result")
			continue
		}
		p, err := decodePaper(id, rec)
		if err != nil {
			log.Warn().Str("id", id).Err(err).Msg("skipping malformed summary record")
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

func decodePaper(id string, raw json.RawMessage) (types.RawPaper, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return types.RawPaper{}, err
	}
	if fields == nil {
		return types.RawPaper{}, fmt.Errorf("record %s is null", id)
	}

	return types.RawPaper{
		UID:        stringField(fields, "uid", id),
		Title:      stringField(fields, "title", types.Unknown),
		PubDate:    stringField(fields, "pubdate", types.Unknown),
		Authors:    decodeAuthors(fields["authors"]),
		ArticleIDs: decodeArticleIDs(fields["articleids"]),
	}, nil
}

// decodeAuthors keeps entries that are objects with a string name.
func decodeAuthors(raw json.RawMessage) []types.Author {
	authors := []types.Author{}
	for _, entry := range decodeArray(raw) {
		fields, err := decodeObject(entry)
		if err != nil {
			continue
		}
		name, ok := stringValue(fields["name"])
		if !ok {
			continue
		}
		authors = append(authors, types.Author{Name: name})
	}
	return authors
}

// decodeArticleIDs keeps entries that carry a string idtype.
func decodeArticleIDs(raw json.RawMessage) []types.ArticleID {
	articleIDs := []types.ArticleID{}
	for _, entry := range decodeArray(raw) {
		fields, err := decodeObject(entry)
		if err != nil {
			continue
		}
		idType, ok := stringValue(fields["idtype"])
		if !ok {
			continue
		}
		articleIDs = append(articleIDs, types.ArticleID{
			IDType: idType,
			Value:  stringField(fields, "value", ""),
		})
	}
	return articleIDs
}

func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeArray(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil
	}
	return arr
}

func stringValue(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// stringField returns fields[key] when it is a JSON string, else def.
func stringField(fields map[string]json.RawMessage, key, def string) string {
	if s, ok := stringValue(fields[key]); ok {
		return s
	}
	return def
}
