package labels

import (
	"context"
	"html/template"
	"io"
	"net/url"

	"github.com/hweiming/dispatch-tracker/internal/orders"
	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
)

const qrEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// QRCodeURL builds the QR image URL encoding the order id, as printed on the
// physical job sheet and scanned back at the warehouse.
func QRCodeURL(orderID string) string {
	return qrEndpoint + "?size=300x300&data=" + url.QueryEscape(orderID)
}

var jobSheetTmpl = template.Must(template.New("job-sheet").Parse(`<html>
  <head>
    <title>Job Sheet - {{.Order.ID}}</title>
    <style>
      body { font-family: sans-serif; text-align: center; padding: 20px; border: 4px solid #000; margin: 10px; }
      h1 { font-size: 20px; margin-bottom: 5px; }
      h2 { font-size: 28px; font-weight: 900; margin: 10px 0; }
      .box-info { margin: 20px 0; border: 2px solid #000; padding: 15px; text-align: left; }
      .items { text-align: left; font-size: 14px; margin-top: 20px; }
      img { margin: 10px auto; display: block; border: 1px solid #eee; }
      .footer { font-size: 12px; margin-top: 40px; font-weight: bold; }
    </style>
  </head>
  <body>
    <h1>DISPATCH TRACKER</h1>
    <h2>{{.TruckName}}</h2>
    <img src="{{.QRCodeURL}}" width="200" height="200" />
    <div class="box-info">
      <p><strong>JOB ID:</strong> {{.Order.ID}}</p>
      <p><strong>DESTINATION:</strong><br/>{{.Order.Destination}}</p>
    </div>
    <div class="items">
      <strong>CONTENTS:</strong>
      <ul>
        {{range .Order.Items}}<li>{{.Qty}} x {{.Name}}</li>
        {{end}}
      </ul>
    </div>
    <div class="footer">SCAN AT: WAREHOUSE &gt; TRUCK</div>
  </body>
</html>
`))

type jobSheetData struct {
	Order     orders.Order
	TruckName string
	QRCodeURL string
}

// RenderJobSheet writes the printable HTML job sheet for an order.
func RenderJobSheet(w io.Writer, order orders.Order, truckName string) error {
	if truckName == "" {
		truckName = "Unassigned"
	}
	data := jobSheetData{
		Order:     order,
		TruckName: truckName,
		QRCodeURL: QRCodeURL(order.ID),
	}
	if err := jobSheetTmpl.Execute(w, data); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render job sheet")
	}
	return nil
}

// Printer hands a rendered job sheet to an external print/share surface.
// Callers treat it as fire-and-forget.
type Printer interface {
	Print(ctx context.Context, order orders.Order, truckName string) error
}

// WriterPrinter renders onto any writer; the console app points it at a file
// or stdout in place of a real print dialog.
type WriterPrinter struct {
	Out io.Writer
}

func (p WriterPrinter) Print(ctx context.Context, order orders.Order, truckName string) error {
	return RenderJobSheet(p.Out, order, truckName)
}
