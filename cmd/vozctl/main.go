package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/vozlink/vozlink-client/internal/api"
	"github.com/vozlink/vozlink-client/internal/app"
	"github.com/vozlink/vozlink-client/internal/assign"
	"github.com/vozlink/vozlink-client/internal/audio"
	"github.com/vozlink/vozlink-client/internal/config"
	"github.com/vozlink/vozlink-client/internal/ctxutil"
	"github.com/vozlink/vozlink-client/internal/export"
	"github.com/vozlink/vozlink-client/internal/jobs"
	"github.com/vozlink/vozlink-client/internal/logging"
	"github.com/vozlink/vozlink-client/internal/models"
	"github.com/vozlink/vozlink-client/internal/observability"
	"github.com/vozlink/vozlink-client/internal/services"
	"github.com/vozlink/vozlink-client/internal/session"
	"github.com/vozlink/vozlink-client/internal/store"
)

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "vozctl")
	if err != nil {
		lg.Sugar.Warnw("sentry init failed", "err", err)
	}
	defer flush()

	sess, err := session.Open(cfg.StateDir)
	if err != nil {
		lg.Sugar.Fatalw("session open failed", "err", err)
	}

	client := api.New(api.Config{
		BaseURL:  cfg.APIBaseURL,
		Timeout:  cfg.APITimeout,
		Session:  sess,
		Notifier: &api.LogNotifier{Log: lg.Named("notice")},
		Log:      lg.Named("api"),
	})

	auth := services.NewAuth(client, sess)
	msgs := services.NewMessages(client)
	cats := services.NewCategories(client)
	rels := services.NewRelations(client)
	cms := services.NewChildMessages(client)
	dash := services.NewDashboard(client)

	st := store.NewRelationStore(rels, cms, &api.LogNotifier{Log: lg.Named("notice")}, lg.Named("store"))
	wf := assign.NewWorkflow(st, cms, lg.Named("assign"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// у разовых команд один сквозной X-Request-ID на все вызовы;
	// агент получает свежий id на каждый запрос в клиенте
	if os.Args[1] != "agent" {
		ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	}

	// Маршрутизация команд
	switch os.Args[1] {
	case "login":
		u, err := auth.Login(ctx, arg(2, "email"), arg(3, "password"))
		fatalOn(lg, err)
		fmt.Printf("Вошли как %s (%s)\n", u.Name, u.RoleName)
	case "logout":
		fatalOn(lg, auth.Logout(ctx))
		fmt.Println("Сессия завершена")
	case "profile":
		u, err := auth.Profile(ctx)
		fatalOn(lg, err)
		fmt.Printf("%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.RoleName)
	case "messages":
		list, err := msgs.List(ctx)
		fatalOn(lg, err)
		for _, m := range list {
			fmt.Printf("%d\t[%s]\t%s\n", m.ID, m.CategoryName, m.Text)
		}
	case "message-create":
		catID := argInt(lg, 3, "category_id")
		m, err := msgs.Create(ctx, models.CreateMessage{Text: arg(2, "text"), CategoryID: catID})
		fatalOn(lg, err)
		fmt.Printf("Создано сообщение %d\n", m.ID)
	case "message-delete":
		fatalOn(lg, msgs.Delete(ctx, argInt(lg, 2, "message_id")))
		fmt.Println("Удалено")
	case "categories":
		list, err := cats.List(ctx)
		fatalOn(lg, err)
		for _, c := range list {
			fmt.Printf("%d\t%s\n", c.ID, c.Name)
		}
	case "children":
		fatalOn(lg, st.LoadChildren(ctx))
		for _, c := range st.Children() {
			fmt.Printf("%d\t%s\t%s\n", c.ID, c.Name, c.Email)
		}
	case "assign":
		childID := argInt(lg, 2, "child_id")
		msgID := argInt(lg, 3, "message_id")
		fatalOn(lg, st.LoadChildMessages(ctx, childID))
		fatalOn(lg, wf.Assign(ctx, childID, msgID))
		fmt.Println("Назначено")
	case "unassign":
		childID := argInt(lg, 2, "child_id")
		asgID := argInt(lg, 3, "assignment_id")
		fatalOn(lg, wf.Remove(ctx, childID, asgID))
		fmt.Println("Снято")
	case "assignments":
		childID := argInt(lg, 2, "child_id")
		fatalOn(lg, st.LoadChildMessages(ctx, childID))
		list, _ := st.ChildMessages(childID)
		for _, cm := range list {
			text := ""
			if cm.Message != nil {
				text = cm.Message.Text
			}
			fmt.Printf("%d\tmsg=%d\tfav=%v\t%s\n", cm.ID, cm.MessageID, cm.IsFavorite, text)
		}
	case "stats":
		childID := argInt(lg, 2, "child_id")
		fatalOn(lg, st.LoadChildStats(ctx, childID))
		if s, ok := st.ChildStats(childID); ok {
			fmt.Printf("Сообщений: %d, избранных: %d, категорий: %d\n",
				s.TotalMessages, s.FavoriteMessages, s.CategoriesUsed)
		}
	case "audio":
		f := audio.NewFetcher(client, cfg.AudioDir)
		path, err := f.Fetch(ctx, argInt(lg, 2, "message_id"))
		fatalOn(lg, err)
		fmt.Println(path)
	case "export":
		var childID int64
		if len(os.Args) > 2 {
			childID = argInt(lg, 2, "child_id")
		}
		fatalOn(lg, runExport(ctx, sess, st, wf, childID))
	case "agent":
		runAgent(ctx, cfg, lg, auth, dash, st, wf)
	default:
		usage()
		os.Exit(2)
	}
}

// runExport собирает xlsx-отчёт по текущему состоянию на сервере:
// весь ростер наставника или, при childID != 0, один ребёнок.
func runExport(ctx context.Context, sess *session.Session, st *store.RelationStore, wf *assign.Workflow, childID int64) error {
	if err := st.LoadChildren(ctx); err != nil {
		return err
	}
	children := st.Children()
	if childID != 0 {
		found := false
		for _, c := range children {
			if c.ID == childID {
				children = []models.PersonRef{c}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("ребёнок %d не привязан к текущему наставнику", childID)
		}
	}
	ids := make([]int64, 0, len(children))
	for _, c := range children {
		ids = append(ids, c.ID)
	}
	res := wf.LoadForChildren(ctx, ids)
	for _, f := range res.Failed {
		fmt.Fprintf(os.Stderr, "ребёнок %d пропущен: %s\n", f.ChildID, f.Reason)
	}

	assignments := make(map[int64][]models.ChildMessage, len(children))
	stats := make(map[int64]models.ChildStats, len(children))
	for _, c := range children {
		if list, ok := st.ChildMessages(c.ID); ok {
			assignments[c.ID] = list
		}
		if err := st.LoadChildStats(ctx, c.ID); err == nil {
			if s, ok := st.ChildStats(c.ID); ok {
				stats[c.ID] = s
			}
		}
	}

	tutor := ""
	if u := sess.User(); u != nil {
		tutor = u.Name
	}
	name := export.BuildRosterFilename(tutor)
	if childID != 0 {
		name = export.BuildChildReportFilename(children[0].Name, tutor)
	}

	wb, err := export.NewWorkbook(export.RosterSheets(children, assignments, stats))
	if err != nil {
		return err
	}
	path, err := wb.SaveTemp(name)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// runAgent — фоновый режим: debug-сервер, keepalive профиля и
// периодическая синхронизация ростера/статистики.
func runAgent(ctx context.Context, cfg *config.Config, lg *logging.Log,
	auth *services.AuthService, dash *services.DashboardService,
	st *store.RelationStore, wf *assign.Workflow) {

	probe := func(ctx context.Context) error {
		_, err := dash.Stats(ctx)
		return err
	}
	app.StartHTTP(ctx, cfg.HTTPAddr, probe)

	r := jobs.New(ctx, lg.Named("jobs"))
	r.Every(5*time.Minute, "profile_keepalive", jobs.ProfileKeepalive(auth))
	r.Every(1*time.Minute, "roster_refresh", jobs.RosterRefresh(st, wf))
	r.Every(10*time.Minute, "stats_refresh", jobs.StatsRefresh(st))

	lg.Sugar.Infow("агент запущен", "addr", cfg.HTTPAddr)
	<-ctx.Done()
	lg.Sugar.Info("агент остановлен")
}

func usage() {
	fmt.Fprintln(os.Stderr, `vozctl <команда> [аргументы]

  login <email> <password>     войти и сохранить сессию
  logout                       выйти
  profile                      текущий профиль
  messages                     все сообщения
  message-create <text> <cat>  создать сообщение
  message-delete <id>          удалить сообщение
  categories                   категории
  children                     мои дети
  assignments <child>          назначения ребёнка
  assign <child> <message>     назначить сообщение
  unassign <child> <asg_id>    снять назначение
  stats <child>                статистика ребёнка
  audio <message>              скачать озвучку
  export [child]               xlsx-отчёт: весь ростер или один ребёнок
  agent                        фоновый агент (/healthz, /metrics)`)
}

func arg(i int, name string) string {
	if len(os.Args) <= i {
		fmt.Fprintf(os.Stderr, "не хватает аргумента <%s>\n", name)
		os.Exit(2)
	}
	return os.Args[i]
}

func argInt(lg *logging.Log, i int, name string) int64 {
	v, err := strconv.ParseInt(arg(i, name), 10, 64)
	if err != nil {
		lg.Sugar.Fatalf("аргумент <%s> должен быть числом: %v", name, err)
	}
	return v
}

func fatalOn(lg *logging.Log, err error) {
	if err != nil {
		observability.CaptureErr(err)
		lg.Sugar.Fatalw("команда не выполнена", "err", err)
	}
}
