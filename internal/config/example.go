package config

// ExampleYAML is a complete configuration for a life expectancy model. The
// init command writes it on request and tests load it.
const ExampleYAML = `name: life_expectancy_modelling_data
columns:
  - name: user_id
    data_schema:
      dtype: str
      unique: true
    tags: [unique_identifier]
    description: Unique user identifier
  - name: timestamp
    data_schema:
      dtype: datetime
    tags: [row_timestamp]
    description: Time the row was recorded
  - name: name
    data_schema:
      dtype: str
      nullable: true
    tags: [metadata]
  - name: weight
    data_schema:
      dtype: float64
      checks:
        - ge: 0
    tags: [raw_feature]
    description: Weight in kilograms
  - name: height
    data_schema:
      dtype: float64
      checks:
        - ge: 0
    tags: [raw_feature]
    description: Height in centimetres
  - name: age
    data_schema:
      dtype: int64
      checks:
        - ge: 0
          le: 150
    tags: [raw_feature, model_feature]
  - name: bmi
    data_schema:
      dtype: float64
    tags: [derived_feature, model_feature]
    description: Body mass index derived from weight and height
  - name: life_expectancy
    data_schema:
      dtype: int64
    tags: [target]
`
