package arxiv

import (
	"encoding/xml"
	"testing"
	"time"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <title type="html">ArXiv Query Results</title>
  <entry>
    <id>http://arxiv.org/abs/2602.00001v1</id>
    <updated>2026-02-11T10:00:00Z</updated>
    <published>2026-02-10T09:30:00Z</published>
    <title>Attention Mechanisms
 Revisited</title>
    <summary>We revisit
 attention.</summary>
    <author><name>A. Smith</name></author>
    <author><name>B.
 Jones</name></author>
    <arxiv:comment xmlns:arxiv="http://arxiv.org/schemas/atom">Accepted at ACL 2026</arxiv:comment>
    <link href="http://arxiv.org/abs/2602.00001v1" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2602.00001v1" rel="related" type="application/pdf"/>
    <arxiv:primary_category xmlns:arxiv="http://arxiv.org/schemas/atom" term="cs.CL" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2602.00002v1</id>
    <updated>2026-02-12T08:00:00Z</updated>
    <published>2026-02-11T08:00:00Z</published>
    <title>Sparse Mixture Decoding</title>
    <summary>Decoding with sparse mixtures.</summary>
    <author><name>C. Wu</name></author>
    <link href="http://arxiv.org/abs/2602.00002v1" rel="alternate" type="text/html"/>
    <arxiv:primary_category xmlns:arxiv="http://arxiv.org/schemas/atom" term="stat.ML" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
</feed>`

func parseFixture(t *testing.T) atomFeed {
	t.Helper()

	var feed atomFeed
	if err := xml.Unmarshal([]byte(feedFixture), &feed); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	if len(feed.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(feed.Entries))
	}
	return feed
}

func TestMapEntryNormalizesFields(t *testing.T) {
	t.Parallel()

	feed := parseFixture(t)
	record := mapEntry(feed.Entries[0])

	if record.Title != "Attention Mechanisms  Revisited" {
		t.Fatalf("title = %q", record.Title)
	}
	if record.URL != "http://arxiv.org/abs/2602.00001v1" {
		t.Fatalf("url = %q", record.URL)
	}
	if record.PDFURL != "http://arxiv.org/pdf/2602.00001v1" {
		t.Fatalf("pdf url = %q", record.PDFURL)
	}
	if record.Category != "cs.CL" {
		t.Fatalf("category = %q", record.Category)
	}
	if len(record.Authors) != 2 || record.Authors[0] != "A. Smith" {
		t.Fatalf("authors = %v", record.Authors)
	}
	if !record.Accepted {
		t.Fatal("accepted flag not derived from comment")
	}

	wantPublished := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	if !record.Published.Equal(wantPublished) {
		t.Fatalf("published = %v", record.Published)
	}
	wantUpdated := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)
	if !record.Updated.Equal(wantUpdated) {
		t.Fatalf("updated = %v", record.Updated)
	}
}

func TestMapEntryPDFFallback(t *testing.T) {
	t.Parallel()

	feed := parseFixture(t)
	record := mapEntry(feed.Entries[1])

	if record.PDFURL != "http://arxiv.org/pdf/2602.00002v1" {
		t.Fatalf("pdf fallback = %q", record.PDFURL)
	}
	if record.Accepted {
		t.Fatal("accepted should be false without a comment")
	}
	if record.Comment != "" {
		t.Fatalf("comment = %q, want empty", record.Comment)
	}
}

func TestAcceptedDetectionIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	entry := atomEntry{
		ID:      "http://arxiv.org/abs/2602.00003v1",
		Comment: "To APPEAR in TACL",
	}
	if record := mapEntry(entry); !record.Accepted {
		t.Fatal("appear marker not detected")
	}

	entry.Comment = "12 pages, 3 figures"
	if record := mapEntry(entry); record.Accepted {
		t.Fatal("plain comment flagged as accepted")
	}
}
