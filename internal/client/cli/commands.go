package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/lifelog/internal/client/api"
	"github.com/dmitrijs2005/lifelog/internal/client/session"
)

var today = func() string { return time.Now().Format("2006-01-02") }

var errAlreadySignedIn = errors.New("already logged in, log out first")

func (a *App) Signup(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadySignedIn
	}
	email, err := prompt(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	name, err := prompt(a.reader, a.out, "Name (optional)")
	if err != nil {
		return err
	}
	pw, err := promptPassword(a.out)
	if err != nil {
		return err
	}
	if err := a.session.SignUp(ctx, email, name, pw); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created. Logged in as %s\n", a.status())
	return nil
}

func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadySignedIn
	}
	email, err := prompt(a.reader, a.out, "Email")
	if err != nil {
		return err
	}
	pw, err := promptPassword(a.out)
	if err != nil {
		return err
	}
	if err := a.session.SignIn(ctx, email, pw); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", a.status())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	u, ok := a.session.User()
	if !ok {
		return session.ErrNotSignedIn
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.DisplayName(), u.ID)
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	return a.session.Do(ctx, func(ctx context.Context, token string) error {
		cats, err := a.backend.Categories(ctx, token)
		if err != nil {
			return err
		}
		if len(cats) == 0 {
			fmt.Fprintln(a.out, "No categories")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tICON\tCOLOR")
		for _, c := range cats {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Icon, c.Color)
		}
		return tw.Flush()
	})
}

func (a *App) AddCategory(ctx context.Context) error {
	var fields [3]string
	for i, label := range []string{"Name", "Icon", "Color (#RRGGBB)"} {
		v, err := prompt(a.reader, a.out, label)
		if err != nil {
			return err
		}
		fields[i] = v
	}
	return a.session.Do(ctx, func(ctx context.Context, token string) error {
		c, err := a.backend.CreateCategory(ctx, token, fields[0], fields[1], fields[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Category %s created\n", c.ID)
		return nil
	})
}

func (a *App) DeleteCategory(ctx context.Context, id string) error {
	return a.session.Do(ctx, func(ctx context.Context, token string) error {
		if err := a.backend.DeleteCategory(ctx, token, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Category deleted")
		return nil
	})
}

func (a *App) Records(ctx context.Context, categoryID string) error {
	return a.session.Do(ctx, func(ctx context.Context, token string) error {
		recs, err := a.backend.Records(ctx, token, categoryID)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Fprintln(a.out, "No records")
			return nil
		}
		tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tTITLE\tIMAGE")
		for _, r := range recs {
			img := ""
			if r.ImageURL != nil {
				img = *r.ImageURL
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.DateLogged, r.Title, img)
		}
		return tw.Flush()
	})
}

func (a *App) AddRecord(ctx context.Context) error {
	var rec api.NewRecord
	var err error

	if rec.Title, err = prompt(a.reader, a.out, "Title (optional)"); err != nil {
		return err
	}
	if rec.Description, err = prompt(a.reader, a.out, "Description (optional)"); err != nil {
		return err
	}
	if rec.DateLogged, err = prompt(a.reader, a.out, "Date (YYYY-MM-DD, empty for today)"); err != nil {
		return err
	}
	if rec.DateLogged == "" {
		rec.DateLogged = today()
	}
	if rec.CategoryID, err = prompt(a.reader, a.out, "Category id (optional)"); err != nil {
		return err
	}
	path, err := prompt(a.reader, a.out, "Image file (optional)")
	if err != nil {
		return err
	}

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		rec.Image = &api.Image{
			Filename:    filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Body:        f,
		}
	}

	return a.session.Do(ctx, func(ctx context.Context, token string) error {
		id, err := a.backend.CreateRecord(ctx, token, rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Record %s created\n", id)
		return nil
	})
}

func (a *App) DeleteRecord(ctx context.Context, id string) error {
	return a.session.Do(ctx, func(ctx context.Context, token string) error {
		if err := a.backend.DeleteRecord(ctx, token, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Record deleted")
		return nil
	})
}

func (a *App) Stats(ctx context.Context) error {
	return a.session.Do(ctx, func(ctx context.Context, token string) error {
		s, err := a.backend.Stats(ctx, token)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Total: %d\nThis month: %d\nLast 7 days: %d\nCategories: %d\n",
			s.Total, s.ThisMonth, s.LastSevenDays, s.Categories)
		return nil
	})
}
