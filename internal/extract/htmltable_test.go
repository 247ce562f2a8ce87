package extract

import (
	"errors"
	"testing"

	"github.com/tradewatch/disclosures/internal/model"
)

var detailCtx = Context{
	Chamber:    model.ChamberSenate,
	Politician: "Jane Doe",
	FilingDate: "01/05/2025",
	SourceURL:  "https://efd.example.gov/search/view/ptr/abc/",
}

const staticTablePage = `<html><body>
<table class="transactions">
<thead><tr><th>#</th><th>Transaction Date</th><th>Owner</th><th>Ticker</th>
<th>Asset Name</th><th>Asset Type</th><th>Type</th><th>Amount</th></tr></thead>
<tbody>
<tr><td>1</td><td>01/02/2025</td><td>Self</td><td>AAPL</td>
<td>Apple Inc.</td><td>Stock</td><td>Purchase</td><td>$1,001 - $15,000</td></tr>
<tr><td>2</td><td>01/03/2025</td><td>Spouse</td><td>--</td>
<td>US Treasury Note</td><td>Other Securities</td><td>Sale (Full)</td><td>$15,001 - $50,000</td></tr>
<tr><td>broken row</td></tr>
</tbody>
</table>
</body></html>`

func TestAdaptHTMLTableStatic(t *testing.T) {
	partials, skipped, err := Adapt(HTMLTable{HTML: staticTablePage}, detailCtx)
	if err != nil {
		t.Fatalf("Adapt failed: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1 (the broken row)", skipped)
	}
	if len(partials) != 2 {
		t.Fatalf("got %d partials, want 2", len(partials))
	}

	p := partials[0]
	if p.Politician != "Jane Doe" {
		t.Errorf("Politician = %q, want Jane Doe", p.Politician)
	}
	if p.TransactionRaw != "01/02/2025" {
		t.Errorf("TransactionRaw = %q, want 01/02/2025", p.TransactionRaw)
	}
	if p.TickerRaw != "AAPL" {
		t.Errorf("TickerRaw = %q, want AAPL", p.TickerRaw)
	}
	if p.AssetName != "Apple Inc." {
		t.Errorf("AssetName = %q, want Apple Inc.", p.AssetName)
	}
	if p.TxTypeRaw != "Purchase" {
		t.Errorf("TxTypeRaw = %q, want Purchase", p.TxTypeRaw)
	}
	if p.OwnerRaw != "Self" {
		t.Errorf("OwnerRaw = %q, want Self", p.OwnerRaw)
	}

	if partials[1].TickerRaw != "--" {
		t.Errorf("second row TickerRaw = %q, want the sentinel --", partials[1].TickerRaw)
	}
}

const scriptFallbackPage = `<html><body>
<div id="results"></div>
<script>
var transactions = [["1","01/02/2025","Self","<a href='/x'>MSFT</a>","Microsoft Corp","Stock","Purchase","$1,001 - $15,000"]];
renderTable(transactions);
</script>
</body></html>`

func TestAdaptHTMLTableScriptFallback(t *testing.T) {
	partials, skipped, err := Adapt(HTMLTable{HTML: scriptFallbackPage}, detailCtx)
	if err != nil {
		t.Fatalf("Adapt failed: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(partials) != 1 {
		t.Fatalf("got %d partials, want 1", len(partials))
	}
	if partials[0].TickerRaw != "MSFT" {
		t.Errorf("TickerRaw = %q, want MSFT (markup stripped)", partials[0].TickerRaw)
	}
	if partials[0].AssetName != "Microsoft Corp" {
		t.Errorf("AssetName = %q, want Microsoft Corp", partials[0].AssetName)
	}
}

func TestAdaptHTMLTableShapeDrift(t *testing.T) {
	_, _, err := Adapt(HTMLTable{HTML: `<html><body><p>nothing here</p></body></html>`}, detailCtx)
	var sd *ShapeDriftError
	if !errors.As(err, &sd) {
		t.Fatalf("err = %v, want ShapeDriftError", err)
	}
}
