// Package tabreg is a small tabular regression pipeline library: it loads a
// delimited dataset against a declared schema, removes incomplete rows,
// label-encodes categorical features, fits an ordinary-least-squares linear
// model, evaluates it, and serves predictions for new raw inputs through the
// encoders fitted at training time.
//
// # Packages
//
//   - dataset: schema-validated tables, CSV loading, cleaning, splitting
//   - preprocessing: the LabelEncoder for categorical features
//   - linear: the OLS regression estimator on gonum matrices
//   - metrics: MSE, RMSE, MAE, R² and the EvaluationResult
//   - pipeline: the end-to-end orchestration and PredictOne
//   - plot: quick-look scatter plots of a dataset
//
// # Quick start
//
//	p, err := pipeline.New(pipeline.Config{
//	    Schema: dataset.Schema{Columns: []dataset.ColumnSpec{
//	        {Name: "Years of Experience", Kind: dataset.Numeric},
//	        {Name: "Job Title", Kind: dataset.Categorical},
//	        {Name: "Salary", Kind: dataset.Numeric},
//	    }},
//	    FeatureColumns: []string{"Years of Experience", "Job Title"},
//	    TargetColumn:   "Salary",
//	    TestFraction:   0.2,
//	    Seed:           42,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := p.RunFile("Salary_Data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("MSE=%.2f R2=%.4f\n", result.MSE, result.R2)
//
//	salary, err := p.PredictOne(map[string]interface{}{
//	    "Years of Experience": 5.0,
//	    "Job Title":           "Data Scientist",
//	})
//
// Everything runs synchronously on one goroutine and operates on one
// in-memory dataset per run; pipelines never share mutable state, so
// parallel experiments use independent Pipeline values.
package tabreg
