package template_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/preparedq/expr"
	"github.com/jonwraymond/preparedq/lazy"
	"github.com/jonwraymond/preparedq/template"
)

func byEmail(ctx context.Context, args map[string]any) (*expr.Query, error) {
	return &expr.Query{
		Table:   "users",
		Columns: []string{"id", "email"},
		Where:   expr.Eq("email", args["email"]),
	}, nil
}

func ExampleBuilder_Build() {
	ctx, sc, _ := lazy.Enter(context.Background(), map[string]any{"email": "first@x.y"})
	defer sc.Exit()

	b := template.Builder{Name: "users.byEmail", Fn: byEmail, Dialect: expr.Postgres}
	tpl, _ := b.Build(ctx, sc)

	fmt.Println(tpl.Skeleton())
	fmt.Println(tpl.Key())

	// The template binds whatever the active scope holds now.
	st, _ := template.Materialize(ctx, tpl)
	fmt.Println(st.SQL, st.Args)

	// A later call with a different value reuses it untouched.
	ctx2, sc2, _ := lazy.Enter(context.Background(), map[string]any{"email": "second@x.y"})
	defer sc2.Exit()
	st2, _ := template.Materialize(ctx2, tpl)
	fmt.Println(st2.SQL, st2.Args)
	// Output:
	// SELECT "id", "email" FROM "users" WHERE "email" = ?
	// users.byEmail(email=OTHER)
	// SELECT "id", "email" FROM "users" WHERE "email" = $1 [first@x.y]
	// SELECT "id", "email" FROM "users" WHERE "email" = $1 [second@x.y]
}

func ExampleMaterialize_collections() {
	inTeams := func(ctx context.Context, args map[string]any) (*expr.Query, error) {
		return &expr.Query{Table: "users", Where: expr.In("team", args["teams"])}, nil
	}

	ctx, sc, _ := lazy.Enter(context.Background(), map[string]any{"teams": []string{"a"}})
	defer sc.Exit()
	tpl, _ := template.Builder{Name: "users.inTeams", Fn: inTeams, Dialect: expr.Postgres}.Build(ctx, sc)

	// One element at build time, three now; markers follow the values.
	ctx3, sc3, _ := lazy.Enter(context.Background(), map[string]any{"teams": []string{"x", "y", "z"}})
	defer sc3.Exit()
	st, _ := template.Materialize(ctx3, tpl)
	fmt.Println(st.SQL)
	fmt.Println(st.Args)
	// Output:
	// SELECT * FROM "users" WHERE "team" IN ($1, $2, $3)
	// [x y z]
}
