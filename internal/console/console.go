package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hweiming/dispatch-tracker/internal/dispatchlog"
	"github.com/hweiming/dispatch-tracker/internal/labels"
	"github.com/hweiming/dispatch-tracker/internal/orders"
	"github.com/hweiming/dispatch-tracker/internal/registry"
	"github.com/hweiming/dispatch-tracker/internal/scan"
	"github.com/hweiming/dispatch-tracker/pkg/enums"
	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
	"github.com/hweiming/dispatch-tracker/pkg/logger"
)

// App is the line-oriented stand-in for the mobile UI: it renders state and
// forwards commands into the workflow engine, nothing more.
type App struct {
	in       *bufio.Scanner
	out      io.Writer
	orders   *orders.Store
	svc      orders.Service
	log      *dispatchlog.Store
	registry *registry.Registry
	session  *scan.Session
	printer  labels.Printer
	logg     *logger.Logger
}

// Params wires the console app.
type Params struct {
	In       io.Reader
	Out      io.Writer
	Orders   *orders.Store
	Service  orders.Service
	Log      *dispatchlog.Store
	Registry *registry.Registry
	Session  *scan.Session
	Printer  labels.Printer
	Logger   *logger.Logger
}

func New(params Params) (*App, error) {
	if params.In == nil || params.Out == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "console streams required")
	}
	if params.Orders == nil || params.Service == nil || params.Log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stores required")
	}
	if params.Registry == nil || params.Session == nil || params.Printer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "registry, session and printer required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &App{
		in:       bufio.NewScanner(params.In),
		out:      params.Out,
		orders:   params.Orders,
		svc:      params.Service,
		log:      params.Log,
		registry: params.Registry,
		session:  params.Session,
		printer:  params.Printer,
		logg:     params.Logger,
	}, nil
}

// Run reads commands until quit or EOF.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "dispatch-tracker console. Type 'help' for commands.")
	for {
		fmt.Fprintf(a.out, "[%s]> ", a.session.State())
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		if err := a.dispatch(ctx, cmd, arg); err != nil {
			fmt.Fprintf(a.out, "error: %s\n", err)
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd, arg string) error {
	switch cmd {
	case "help":
		a.printHelp()
	case "orders":
		a.printOrders()
	case "logs":
		a.printLogs(a.log.All())
	case "history":
		a.printLogs(a.log.ForOrder(arg))
	case "trucks":
		a.printTrucks()
	case "create":
		return a.createOrder(ctx)
	case "delete":
		return a.svc.Delete(ctx, arg)
	case "print":
		return a.printLabel(ctx, arg)
	case "scan":
		return a.step(ctx, a.session.Scan(ctx, arg))
	case "action":
		action, err := enums.ParseScanAction(strings.ToUpper(arg))
		if err != nil {
			return err
		}
		return a.step(ctx, a.session.SelectAction(ctx, action))
	case "check":
		i, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("check needs an item number")
		}
		return a.step(ctx, a.session.ToggleItem(i))
	case "continue":
		return a.step(ctx, a.session.ChecklistComplete(ctx))
	case "truck":
		return a.step(ctx, a.session.SelectTruck(ctx, arg))
	case "photo":
		return a.step(ctx, a.session.CapturePhoto(ctx))
	case "rmphoto":
		i, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("rmphoto needs a photo number")
		}
		return a.step(ctx, a.session.RemovePhoto(i))
	case "photos":
		return a.step(ctx, a.session.PhotosComplete(ctx))
	case "sign":
		return a.step(ctx, a.session.Sign(ctx))
	case "submit":
		return a.step(ctx, a.session.Submit(ctx))
	case "reset":
		a.session.Reset()
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
	return nil
}

func (a *App) printLabel(ctx context.Context, id string) error {
	order, ok := a.orders.Get(id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %q not found", id))
	}
	ctx = a.logg.WithOrderID(ctx, order.ID)
	if err := a.printer.Print(ctx, order, a.registry.TruckName(order.ExpectedTruckID)); err != nil {
		return err
	}
	a.logg.Info(ctx, "job sheet printed")
	return nil
}

// step reports the session's view after a workflow call so the operator sees
// where they landed.
func (a *App) step(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	a.printSession()
	return nil
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `dashboard:
  orders            list all orders
  trucks            list the fleet
  create            add an order (guided)
  delete <id>       remove an order
  print <id>        render the job sheet
  logs              full scan history
  history <id>      one order's history
scanner:
  scan <code>       start a session with a job code
  action <pickup|load>
  check <n>         toggle manifest line n
  continue          finish the checklist
  truck <id>        select the truck (LOAD only)
  photo             capture a proof photo
  rmphoto <n>       remove captured photo n
  photos            finish photo proof
  sign              capture the signature
  submit            commit the scan
  reset             abandon the session
quit
`)
}

func (a *App) printOrders() {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tTRUCK\tDESTINATION\tITEMS")
	for _, o := range a.orders.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			o.ID, o.Status, o.Priority, a.registry.TruckName(o.ExpectedTruckID), o.Destination, len(o.Items))
	}
	w.Flush()
}

func (a *App) printTrucks() {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR")
	for _, t := range a.registry.Trucks() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Color)
	}
	w.Flush()
}

func (a *App) printLogs(entries []dispatchlog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "no scans recorded")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tORDER\tACTION\tMATCH\tTRUCK\tBY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%s\n",
			e.Timestamp.Format("15:04:05"), e.OrderID, e.Action, e.IsMatch, e.TruckID, e.ScannedBy)
	}
	w.Flush()
}

func (a *App) printSession() {
	state := a.session.State()
	fmt.Fprintf(a.out, "-- %s", state)
	if fb := a.session.Feedback(); fb != "" {
		fmt.Fprintf(a.out, ": %s", fb)
	}
	fmt.Fprintln(a.out)

	order, ok := a.session.Order()
	if !ok {
		return
	}
	switch state {
	case scan.StateActionSelect:
		fmt.Fprintf(a.out, "%s -> %s (%s). Choose 'action pickup' or 'action load'.\n",
			order.ID, order.Destination, a.registry.TruckName(order.ExpectedTruckID))
	case scan.StateChecklist:
		for i, item := range order.Items {
			mark := " "
			if a.session.ItemChecked(i) {
				mark = "x"
			}
			fmt.Fprintf(a.out, "  [%s] %d. %s (qty %d)\n", mark, i, item.Name, item.Qty)
		}
		fmt.Fprintf(a.out, "verified %d/%d\n", a.session.CheckedCount(), len(order.Items))
	case scan.StateTruckSelect:
		a.printTrucks()
	case scan.StatePhotoProof:
		for i, ref := range a.session.ProofImages() {
			fmt.Fprintf(a.out, "  %d. %s\n", i, ref)
		}
	case scan.StateSignature:
		if a.session.Signed() {
			fmt.Fprintln(a.out, "signed; 'submit' to commit")
		} else {
			fmt.Fprintln(a.out, "'sign' to capture the signature")
		}
	}
}

// createOrder walks the new-order form: destination, truck, then item lines
// of "name [qty]" until a blank line.
func (a *App) createOrder(ctx context.Context) error {
	destination, err := a.prompt("destination: ")
	if err != nil {
		return err
	}
	a.printTrucks()
	truckID, err := a.prompt("truck id: ")
	if err != nil {
		return err
	}

	var items []orders.CreateItemInput
	for {
		line, err := a.prompt("item (name [qty], blank to finish): ")
		if err != nil {
			return err
		}
		if line == "" {
			break
		}
		name, qtyStr := line, ""
		if idx := strings.LastIndex(line, " "); idx > 0 {
			if _, convErr := strconv.Atoi(strings.TrimSpace(line[idx+1:])); convErr == nil {
				name, qtyStr = line[:idx], strings.TrimSpace(line[idx+1:])
			}
		}
		qty := 0
		if qtyStr != "" {
			qty, _ = strconv.Atoi(qtyStr)
		}
		items = append(items, orders.CreateItemInput{Name: name, Qty: qty})
	}

	order, err := a.svc.Create(ctx, orders.CreateOrderInput{
		Destination:     destination,
		ExpectedTruckID: truckID,
		Items:           items,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s\n", order.ID)
	return nil
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(a.in.Text()), nil
}
