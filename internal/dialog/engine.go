package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sleepwell/sleepwell/internal/engagement"
	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/repository"
	"github.com/sleepwell/sleepwell/internal/sleep"
	"github.com/sleepwell/sleepwell/internal/tips"
)

// NightTopicName is the topic served by the post-calculation tip shortcut.
const NightTopicName = "night"

// Turn is what the engine emits for the transport layer to render.
type Turn struct {
	State   State
	Reply   models.SpokenText
	Buttons []string
	// End marks the exchange as finished without a state change.
	End bool
}

// Engine drives one conversation turn at a time. Turns for the same user
// are serialized; turns for different users run independently.
type Engine struct {
	repo     repository.Repository
	sessions SessionStore
	render   Renderer
	tracker  *engagement.Tracker
	selector *tips.Selector
	logger   *slog.Logger

	locks sync.Map // user id -> *sync.Mutex
}

// NewEngine wires the engine's collaborators.
func NewEngine(
	repo repository.Repository,
	sessions SessionStore,
	render Renderer,
	tracker *engagement.Tracker,
	selector *tips.Selector,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		repo:     repo,
		sessions: sessions,
		render:   render,
		tracker:  tracker,
		selector: selector,
		logger:   logger,
	}
}

// HandleTurn processes one inbound turn. It never returns an error: any
// failure below is logged and converted into a generic apology with the
// session force-reset to the main menu, so the conversation cannot get
// stuck.
func (e *Engine) HandleTurn(ctx context.Context, userID string, sig Signal, now time.Time) Turn {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	turn, state, err := e.handle(ctx, userID, sig, now)
	if err != nil {
		e.logger.Error("turn failed",
			"user_id", userID,
			"state", state,
			"signal", sig.Kind,
			"error", err.Error(),
		)
		return e.recover(ctx, userID, e.render.GenericError())
	}
	return turn
}

func (e *Engine) userLock(userID string) *sync.Mutex {
	lock, _ := e.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// recover force-resets the session to the main menu after a failed turn.
// A reset failure is logged and ignored, the reply still goes out.
func (e *Engine) recover(ctx context.Context, userID string, reply models.SpokenText) Turn {
	if err := e.sessions.Set(ctx, userID, &Session{State: StateMainMenu}); err != nil {
		e.logger.Error("session reset failed", "user_id", userID, "error", err.Error())
	}
	return Turn{State: StateMainMenu, Reply: reply, Buttons: e.render.MenuButtons()}
}

func (e *Engine) handle(ctx context.Context, userID string, sig Signal, now time.Time) (Turn, State, error) {
	user, err := e.loadOrCreateUser(ctx, userID, now)
	if err != nil {
		return Turn{}, "", err
	}

	sess, err := e.sessions.Get(ctx, userID)
	if err != nil {
		return Turn{}, "", fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		// First turn of the session: check in, then land on the menu.
		turn, err := e.welcome(ctx, user, now)
		return turn, StateMainMenu, err
	}

	state := sess.State

	// Universal signals work the same from every state.
	switch sig.Kind {
	case SignalMenu:
		turn, err := e.toMenu(ctx, userID, e.render.MenuWelcome())
		return turn, state, err
	case SignalHelp:
		return Turn{State: state, Reply: e.render.Help()}, state, nil
	case SignalQuit:
		return Turn{State: state, Reply: e.render.Quit(), End: true}, state, nil
	}

	turn, err := e.dispatch(ctx, user, sess, sig, now)
	return turn, state, err
}

func (e *Engine) loadOrCreateUser(ctx context.Context, userID string, now time.Time) (*models.User, error) {
	user, err := e.repo.UserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		user = &models.User{ID: userID, JoinDate: now}
		if err := e.repo.InsertUser(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (e *Engine) welcome(ctx context.Context, user *models.User, now time.Time) (Turn, error) {
	result, err := e.tracker.CheckIn(ctx, user, now)
	if err != nil {
		return Turn{}, err
	}
	if err := e.sessions.Set(ctx, user.ID, &Session{State: StateMainMenu}); err != nil {
		return Turn{}, fmt.Errorf("store session: %w", err)
	}

	reply := e.render.Comeback(now, result.Streak, result.Percentile)
	if result.FirstEver {
		reply = e.render.FirstWelcome(now)
	}
	return Turn{State: StateMainMenu, Reply: reply, Buttons: e.render.MenuButtons()}, nil
}

func (e *Engine) dispatch(ctx context.Context, user *models.User, sess *Session, sig Signal, now time.Time) (Turn, error) {
	switch sess.State {
	case StateMainMenu:
		return e.inMainMenu(ctx, user, sig)
	case StateAskingForTip:
		return e.askingForTip(ctx, user, sig)
	case StateSelectingTime:
		return e.selectingTime(ctx, user, sig)
	case StateTimeProposed:
		return e.timeProposed(ctx, user, sig)
	case StateInCalculator:
		return e.inCalculator(ctx, user, sess, sig, now)
	case StateCalculated:
		return e.calculated(ctx, user, sig)
	default:
		// Unknown persisted state, e.g. after a rollout that removed one.
		return e.fallback(ctx, user.ID)
	}
}

// fallback handles an unrecognized signal: back to the menu, always.
func (e *Engine) fallback(ctx context.Context, userID string) (Turn, error) {
	return e.toMenu(ctx, userID, e.render.MenuWelcome())
}

func (e *Engine) toMenu(ctx context.Context, userID string, reply models.SpokenText) (Turn, error) {
	if err := e.sessions.Set(ctx, userID, &Session{State: StateMainMenu}); err != nil {
		return Turn{}, fmt.Errorf("store session: %w", err)
	}
	return Turn{State: StateMainMenu, Reply: reply, Buttons: e.render.MenuButtons()}, nil
}

func (e *Engine) inMainMenu(ctx context.Context, user *models.User, sig Signal) (Turn, error) {
	switch sig.Kind {
	case SignalInfo:
		return Turn{State: StateMainMenu, Reply: e.render.Info(), Buttons: e.render.MenuButtons()}, nil

	case SignalAskTip:
		if err := e.sessions.Set(ctx, user.ID, &Session{State: StateAskingForTip}); err != nil {
			return Turn{}, fmt.Errorf("store session: %w", err)
		}
		return Turn{State: StateAskingForTip, Reply: e.render.AskTipTopic(), Buttons: e.render.TopicButtons()}, nil

	case SignalStartCalc:
		if user.LastWakeUpTime != nil {
			if err := e.sessions.Set(ctx, user.ID, &Session{State: StateTimeProposed}); err != nil {
				return Turn{}, fmt.Errorf("store session: %w", err)
			}
			return Turn{
				State:   StateTimeProposed,
				Reply:   e.render.ProposePreviousTime(*user.LastWakeUpTime),
				Buttons: e.render.YesNoButtons(),
			}, nil
		}
		if err := e.sessions.Set(ctx, user.ID, &Session{State: StateSelectingTime}); err != nil {
			return Turn{}, fmt.Errorf("store session: %w", err)
		}
		return Turn{State: StateSelectingTime, Reply: e.render.AskWakeUpTime()}, nil

	default:
		return e.fallback(ctx, user.ID)
	}
}

func (e *Engine) askingForTip(ctx context.Context, user *models.User, sig Signal) (Turn, error) {
	if sig.Kind != SignalTopic {
		return e.fallback(ctx, user.ID)
	}
	topic, err := e.repo.TipsTopicByName(ctx, sig.Topic)
	if errors.Is(err, repository.ErrNotFound) {
		// Non-advancing reprompt: unknown topic keeps the question open.
		return Turn{
			State:   StateAskingForTip,
			Reply:   e.render.WrongTopic(sig.Topic),
			Buttons: e.render.TopicButtons(),
		}, nil
	}
	if err != nil {
		return Turn{}, err
	}
	return e.serveTip(ctx, user, topic)
}

func (e *Engine) serveTip(ctx context.Context, user *models.User, topic *models.TipsTopic) (Turn, error) {
	tip, err := e.selector.NextTip(ctx, user, topic)
	if err != nil {
		return Turn{}, err
	}
	return e.toMenu(ctx, user.ID, e.render.Tip(tip))
}

func (e *Engine) selectingTime(ctx context.Context, user *models.User, sig Signal) (Turn, error) {
	if sig.Kind != SignalTime {
		return e.fallback(ctx, user.ID)
	}
	if sig.WakeUpTime == nil {
		// Bad input never advances the state.
		return Turn{State: StateSelectingTime, Reply: e.render.InvalidTime()}, nil
	}
	return e.enterCalculator(ctx, user.ID, *sig.WakeUpTime)
}

func (e *Engine) timeProposed(ctx context.Context, user *models.User, sig Signal) (Turn, error) {
	switch sig.Kind {
	case SignalYes:
		if user.LastWakeUpTime == nil {
			return Turn{}, fmt.Errorf("time proposed without a stored wake-up time")
		}
		return e.enterCalculator(ctx, user.ID, *user.LastWakeUpTime)
	case SignalNo:
		if err := e.sessions.Set(ctx, user.ID, &Session{State: StateSelectingTime}); err != nil {
			return Turn{}, fmt.Errorf("store session: %w", err)
		}
		return Turn{State: StateSelectingTime, Reply: e.render.AskWakeUpTime()}, nil
	default:
		return e.fallback(ctx, user.ID)
	}
}

func (e *Engine) enterCalculator(ctx context.Context, userID string, wakeUp models.ClockTime) (Turn, error) {
	if err := e.sessions.Set(ctx, userID, &Session{State: StateInCalculator, WakeUp: &wakeUp}); err != nil {
		return Turn{}, fmt.Errorf("store session: %w", err)
	}
	return Turn{State: StateInCalculator, Reply: e.render.AskMode(), Buttons: e.render.ModeButtons()}, nil
}

func (e *Engine) inCalculator(ctx context.Context, user *models.User, sess *Session, sig Signal, now time.Time) (Turn, error) {
	if sig.Kind != SignalMode {
		return e.fallback(ctx, user.ID)
	}
	if sess.WakeUp == nil {
		return Turn{}, fmt.Errorf("calculator entered without a wake-up time")
	}

	// Remember the chosen wake-up time before calculating, so it can be
	// proposed on the next run even if this calculation fails.
	wakeUp := *sess.WakeUp
	user.LastWakeUpTime = &wakeUp
	if err := e.repo.UpdateUser(ctx, user); err != nil {
		return Turn{}, fmt.Errorf("remember wake-up time: %w", err)
	}

	wakeUpAt := wakeUp.On(now)
	if !wakeUpAt.After(now) {
		// That clock time already passed today, so it means tomorrow.
		wakeUpAt = wakeUpAt.AddDate(0, 0, 1)
	}
	calc, err := sleep.Calculate(wakeUpAt, now, sig.Mode)
	if err != nil {
		return Turn{}, err
	}

	pool, err := e.repo.Activities(ctx, 0)
	if err != nil {
		return Turn{}, err
	}
	activities, err := sleep.Activities(now, calc.BedTime, pool, sleep.DefaultActivityLimit)
	if err != nil {
		return Turn{}, err
	}

	if err := e.sessions.Set(ctx, user.ID, &Session{State: StateCalculated}); err != nil {
		return Turn{}, fmt.Errorf("store session: %w", err)
	}
	return Turn{
		State:   StateCalculated,
		Reply:   e.render.SleepResult(calc, activities),
		Buttons: e.render.YesNoButtons(),
	}, nil
}

func (e *Engine) calculated(ctx context.Context, user *models.User, sig Signal) (Turn, error) {
	switch sig.Kind {
	case SignalYes:
		// Straight to a night tip, skipping the topic question.
		topic, err := e.repo.TipsTopicByName(ctx, NightTopicName)
		if err != nil {
			return Turn{}, fmt.Errorf("night topic: %w", err)
		}
		return e.serveTip(ctx, user, topic)
	case SignalNo:
		return e.toMenu(ctx, user.ID, e.render.GoodNight())
	default:
		return e.fallback(ctx, user.ID)
	}
}
