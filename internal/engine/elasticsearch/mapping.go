package elasticsearch

// buildIndexMapping returns the full JSON mapping for a cocktail index,
// with per-locale analyzers for the English and Ukrainian text fields.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "en_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase", "english_stop", "english_stemmer"]
        },
        "uk_analyzer": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase"]
        }
      },
      "filter": {
        "english_stop": {
          "type": "stop",
          "stopwords": "_english_"
        },
        "english_stemmer": {
          "type": "stemmer",
          "language": "english"
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "id":          { "type": "keyword" },
      "title": {
        "properties": {
          "en": { "type": "text", "analyzer": "en_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } },
          "uk": { "type": "text", "analyzer": "uk_analyzer", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 } } }
        }
      },
      "description": {
        "properties": {
          "en": { "type": "text", "analyzer": "en_analyzer" },
          "uk": { "type": "text", "analyzer": "uk_analyzer" }
        }
      },
      "categories":  { "type": "keyword" },
      "abv":         { "type": "float" },
      "image":       { "type": "keyword", "index": false },
      "ingredients": {
        "properties": {
          "id":       { "type": "keyword" },
          "title": {
            "properties": {
              "en": { "type": "text", "analyzer": "en_analyzer" },
              "uk": { "type": "text", "analyzer": "uk_analyzer" }
            }
          },
          "category": { "type": "keyword" },
          "image":    { "type": "keyword", "index": false }
        }
      },
      "equipments": {
        "properties": {
          "id":       { "type": "keyword" },
          "title": {
            "properties": {
              "en": { "type": "text", "analyzer": "en_analyzer" },
              "uk": { "type": "text", "analyzer": "uk_analyzer" }
            }
          },
          "image":    { "type": "keyword", "index": false }
        }
      },
      "created_at":  { "type": "date" },
      "updated_at":  { "type": "date" }
    }
  }
}`
}
